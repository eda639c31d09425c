package web

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates
var templateFS embed.FS

// fsLoader serves templates from an fs.FS. Names are always relative to
// the templates root, so includes read the same from any template.
type fsLoader struct {
	fsys fs.FS
}

func (l fsLoader) Abs(_, name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

func (l fsLoader) Get(name string) (io.Reader, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Renderer renders pongo2 templates into gin responses.
type Renderer struct {
	set    *pongo2.TemplateSet
	logger zerolog.Logger
}

// NewRenderer creates a renderer over the embedded templates. In debug
// mode templates are parsed on every render.
func NewRenderer(debug bool, logger zerolog.Logger) (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	return newRenderer(sub, debug, logger), nil
}

func newRenderer(fsys fs.FS, debug bool, logger zerolog.Logger) *Renderer {
	set := pongo2.NewSet("console", fsLoader{fsys: fsys})
	set.Debug = debug
	set.Globals = pongo2.Context{
		"sidebar_title": SidebarTitle,
		"header_title":  HeaderTitle,
	}
	return &Renderer{set: set, logger: logger.With().Str("component", "renderer").Logger()}
}

// Render executes the named template and returns the output bytes.
func (r *Renderer) Render(name string, data gin.H) ([]byte, error) {
	tmpl, err := r.set.FromCache(name)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", name, err)
	}
	out, err := tmpl.ExecuteBytes(pongo2.Context(data))
	if err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return out, nil
}

// HTML renders an HTML template
func (r *Renderer) HTML(c *gin.Context, code int, name string, data gin.H) {
	out, err := r.Render(name, data)
	if err != nil {
		r.logger.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("render failed")
		c.String(http.StatusInternalServerError, "Template error")
		return
	}
	c.Data(code, "text/html; charset=utf-8", out)
}
