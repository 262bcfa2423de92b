package sharecraft

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

func (a *App) handleLoginPage(c echo.Context) error {
	if currentAuth(c).Authenticated {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return a.renderPage(c, "login.html", nil)
}

func (a *App) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	wantUser, ok := a.KV.Get("admin_username")
	if !ok || wantUser == "" {
		wantUser = a.Config.AdminUsername
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Config.AdminPassword)) == 1
	if userOK && passOK {
		if err := setAdminSession(c, username); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return a.renderPage(c, "login.html", echo.Map{"ErrorMessage": "Invalid username or password"})
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

func (a *App) handleDashboard(c echo.Context) error {
	var stats DashboardStats
	if status, ok := c.Get(authStatusKey).(AuthStatus); ok {
		stats.Username = status.Username
	}

	// The count queries are independent reads, so they run concurrently.
	var g errgroup.Group
	g.Go(func() error {
		n, err := a.Store.CountAll()
		stats.TotalPages = n
		return err
	})
	g.Go(func() error {
		n, err := a.Store.CountCustom()
		stats.CustomPreviews = n
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	pages, err := a.Store.RecentPages(10)
	if err != nil {
		return err
	}
	stats.Pages = pages
	return a.renderPage(c, "panel.html", stats)
}

func (a *App) handleAddPage(c echo.Context) error {
	return a.renderPage(c, "add.html", nil)
}

func (a *App) handleEditPage(c echo.Context) error {
	idParam := c.QueryParam("id")
	if idParam == "" {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	post, err := a.Store.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Redirect(http.StatusSeeOther, "/admin")
		}
		return err
	}
	return a.renderPage(c, "edit.html", post)
}

// renderPage executes an admin fragment through the template cache and
// writes it as HTML.
func (a *App) renderPage(c echo.Context, name string, data any) error {
	var buf bytes.Buffer
	if err := a.Templates.Render(&buf, name, data); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
