// Package view renders the HTML pages. Templates are embedded; each page is parsed
// together with layout.html and cached by name.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/rezagth/gestion-installations/i18n"
	"github.com/rezagth/gestion-installations/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	devMode      bool
	langResolver = func(_ *http.Request) string { return i18n.DefaultLang }
)

// SetLangResolver allows the host app to provide a custom language resolver (e.g., reading from context).
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetDevMode disables the template cache.
func SetDevMode(dev bool) { devMode = dev }

// Funcs returns the standard func map. Translation helpers read the request language
// through a "lang" data key so parsed templates can be cached across requests.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"t":    func(lang, code string) string { return i18n.T(lang, code) },
		"year": func() int { return time.Now().Year() },
		"date": formatDate,
	}
}

func formatDate(v any) string {
	switch d := v.(type) {
	case time.Time:
		return models.FormatDate(d)
	case *time.Time:
		if d == nil {
			return ""
		}
		return models.FormatDate(*d)
	case null.Time:
		if !d.Valid {
			return ""
		}
		return models.FormatDate(d.Time)
	}
	return ""
}

func lookup(name string) (*template.Template, error) {
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok {
			return t, nil
		}
	}
	t, err := template.New("layout.html").Funcs(Funcs()).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t, nil
}

// Render executes the page template name with status 200.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus executes the page template into a buffer and writes it with status.
// Nothing is written when rendering fails.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	t, err := lookup(name)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Lang"]; !exists {
		data["Lang"] = langResolver(r)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
