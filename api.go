package sharecraft

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxUploadSize = 10 << 20 // 10MB

type createPostRequest struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsDefault   bool   `json:"is_default"`
}

// updatePostRequest uses pointers so absent fields keep their stored
// values.
type updatePostRequest struct {
	Path        *string `json:"path"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsDefault   *bool   `json:"is_default"`
}

func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.Store.ListAll()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []Preview{}
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleCreatePost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	if req.Path == "" || req.Title == "" || req.Description == "" || req.ImageURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}
	post, err := a.Store.Create(Preview{
		Path:        req.Path,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

func (a *App) handleUpdatePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}

	post, err := a.Store.GetByID(id)
	if err != nil {
		return err
	}
	if req.Path != nil {
		post.Path = *req.Path
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.ImageURL != nil {
		post.ImageURL = *req.ImageURL
	}
	if req.IsDefault != nil {
		post.IsDefault = *req.IsDefault
	}
	if post.Path == "" || post.Title == "" || post.Description == "" || post.ImageURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	post, err = a.Store.Update(id, post)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleDeletePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.Delete(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (a *App) handleUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}
	if file.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	name := uploadName(file.Filename)
	if err := a.Blobs.Put(c.Request().Context(), name, data, contentType); err != nil {
		return err
	}

	domain, ok := a.KV.Get("site_domain")
	if !ok || domain == "" {
		domain = c.Request().Host
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"fileName": name,
		"url":      "https://" + domain + "/images/" + name,
	})
}

func (a *App) handleImage(c echo.Context) error {
	name := filepath.Base(c.Param("name"))
	obj, err := a.Blobs.Get(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.String(http.StatusNotFound, "Image not found")
		}
		return err
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if obj.ETag != "" {
		c.Response().Header().Set("ETag", obj.ETag)
	}
	return c.Blob(http.StatusOK, contentType, obj.Data)
}

// uploadName builds a unique object key from the upload time, a random
// suffix, and the original file extension.
func uploadName(original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + suffix + filepath.Ext(original)
}
