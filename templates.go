package sharecraft

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"sync"
)

// adminTemplates holds the static admin page fragments rendered through
// the template cache: login, panel, add, and edit.
//
//go:embed templates/*.html
var adminTemplates embed.FS

// TemplateCache is a read-through cache of parsed admin page fragments.
// Entries are parsed on first use and never evicted. Concurrent writers
// for the same key produce identical values, so last-writer-wins is safe;
// it is owned by the App and injected where needed instead of living in a
// package-level singleton.
type TemplateCache struct {
	mu    sync.RWMutex
	fsys  fs.FS
	cache map[string]*template.Template
}

// NewTemplateCache creates a TemplateCache over the given fragment FS.
func NewTemplateCache(fsys fs.FS) *TemplateCache {
	return &TemplateCache{fsys: fsys, cache: make(map[string]*template.Template)}
}

// newAdminTemplateCache returns the cache over the embedded admin fragments.
func newAdminTemplateCache() *TemplateCache {
	sub, err := fs.Sub(adminTemplates, "templates")
	if err != nil {
		// The embedded FS always contains templates/; this cannot fail at runtime.
		panic(err)
	}
	return NewTemplateCache(sub)
}

// Render executes the named fragment with data.
func (tc *TemplateCache) Render(w io.Writer, name string, data any) error {
	tmpl, err := tc.lookup(name)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

func (tc *TemplateCache) lookup(name string) (*template.Template, error) {
	tc.mu.RLock()
	tmpl, ok := tc.cache[name]
	tc.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := template.ParseFS(tc.fsys, name)
	if err != nil {
		return nil, err
	}
	tc.mu.Lock()
	tc.cache[name] = tmpl
	tc.mu.Unlock()
	return tmpl, nil
}
