package postseries

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/postseries/content"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) handleIndex(c echo.Context) error {
	cat, err := a.Catalog.Get()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Index(a.Config.viewSite(), cat.Summaries()))
}

func (a *App) handlePost(c echo.Context) error {
	cat, err := a.Catalog.Get()
	if err != nil {
		return err
	}
	page, err := cat.Resolve(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.viewSite()))
		}
		return err
	}
	return Render(c, a.Views.Post(a.Config.viewSite(), page))
}

func (a *App) handleSitemap(c echo.Context) error {
	cat, err := a.Catalog.Get()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config.viewSite(), cat.Summaries())
}

func (a *App) handleFeed(c echo.Context) error {
	cat, err := a.Catalog.Get()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config.viewSite(), cat.Summaries())
}

func (a *App) handleStylesheet(c echo.Context) error {
	css, err := EmbeddedAssets.ReadFile("embedded/style.css")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", css)
}

func (a *App) handleBaseRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, a.Config.BasePath+"/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.viewSite()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config.viewSite()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
