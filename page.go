package sharecraft

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Request headers forwarded to the origin. The origin shapes its response
// on these; everything else (cookies included) stays on this side.
var forwardedHeaders = []string{"User-Agent", "Accept", "Accept-Language"}

// handlePage proxies the origin and, for social crawlers on a path with an
// applicable override, rewrites the preview metadata in the response body.
// Failures past the origin fetch fail open: the crawler gets the original
// page rather than an error.
func (a *App) handlePage(c echo.Context) error {
	req := c.Request()

	origin, err := a.fetchOrigin(req)
	if err != nil {
		originErrorsTotal.Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "Origin fetch failed")
	}
	defer origin.Body.Close()

	if !IsSocialCrawler(req.Header.Get("User-Agent")) {
		return relay(c, origin)
	}
	crawlerRequestsTotal.Inc()

	meta, ok, err := a.Resolver.Resolve(req.URL.Path)
	if err != nil {
		resolveFailuresTotal.Inc()
		c.Logger().Warnf("resolve override for %s: %v", req.URL.Path, err)
		return relay(c, origin)
	}
	if !ok {
		return relay(c, origin)
	}

	body, err := io.ReadAll(origin.Body)
	if err != nil {
		c.Logger().Warnf("read origin body for %s: %v", req.URL.Path, err)
		return echo.NewHTTPError(http.StatusBadGateway, "Origin read failed")
	}

	rewritten := a.Rewriter.Rewrite(string(body), meta)
	rewrittenResponsesTotal.Inc()

	h := c.Response().Header()
	copyOriginHeaders(h, origin.Header)
	h.Del(echo.HeaderContentLength)
	c.Response().WriteHeader(origin.StatusCode)
	_, err = io.WriteString(c.Response(), rewritten)
	return err
}

// fetchOrigin issues the upstream request for the incoming page request.
// The Go client transparently negotiates gzip, so bodies arrive decoded.
func (a *App) fetchOrigin(in *http.Request) (*http.Response, error) {
	target := a.Config.OriginURL + in.URL.RequestURI()
	req, err := http.NewRequestWithContext(in.Context(), http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for _, name := range forwardedHeaders {
		if v := in.Header.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}
	return a.originClient.Do(req)
}

// relay streams the origin response through unmodified.
func relay(c echo.Context, origin *http.Response) error {
	copyOriginHeaders(c.Response().Header(), origin.Header)
	c.Response().WriteHeader(origin.StatusCode)
	_, err := io.Copy(c.Response(), origin.Body)
	return err
}

func copyOriginHeaders(dst http.Header, src http.Header) {
	for name, values := range src {
		for _, v := range values {
			dst.Add(name, v)
		}
	}
}
