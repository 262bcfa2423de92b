package sharecraft

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// authStatusKey is the echo context key carrying the request's AuthStatus.
const authStatusKey = "authStatus"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request metrics live on a per-App registry so repeated App
	// construction (tests, embedding) cannot double-register collectors.
	a.metricsRegistry = prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "sharecraft",
		Registerer: a.metricsRegistry,
	}))

	e.Use(session.Middleware(newKVSessionStore(a.KV, a.Config.SessionTTL, a.Config.CookieSecure)))

	e.Use(cacheControlMiddleware)
}

// cacheControlMiddleware pins cache headers for the routes this service
// owns; page-route responses keep whatever the origin sent.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/images/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000")
		case strings.HasPrefix(path, "/admin"), strings.HasPrefix(path, "/api"):
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

// requireSession gates a route group on a valid session. API routes get a
// JSON 401; admin pages redirect to the login form.
func (a *App) requireSession(redirect bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			status := currentAuth(c)
			if !status.Authenticated {
				if redirect {
					return c.Redirect(http.StatusSeeOther, "/admin/login")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			c.Set(authStatusKey, status)
			return next(c)
		}
	}
}

// httpErrorHandler maps errors onto the two response dialects: structured
// JSON for the API, redirects back to the dashboard for admin pages.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"

	var he *echo.HTTPError
	switch {
	case errors.Is(err, ErrDuplicatePath):
		code, msg = http.StatusConflict, "Path already exists"
	case errors.Is(err, ErrNotFound):
		code, msg = http.StatusNotFound, "Not found"
	case errors.As(err, &he):
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}

	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}

	path := c.Request().URL.Path
	switch {
	case strings.HasPrefix(path, "/api"):
		_ = c.JSON(code, echo.Map{"error": msg})
	case strings.HasPrefix(path, "/admin"):
		_ = c.Redirect(http.StatusSeeOther, "/admin")
	default:
		_ = c.String(code, msg)
	}
}
