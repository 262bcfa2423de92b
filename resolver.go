package sharecraft

import "errors"

// Resolver picks the preview override that applies to a request path.
type Resolver struct {
	store *Store
}

// NewResolver returns a Resolver backed by the given store.
func NewResolver(s *Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve returns the override for path: the exact match when one exists,
// otherwise the default record, otherwise ok=false. Store failures are
// returned as errors so the page pipeline can fail open to the unmodified
// origin response.
func (r *Resolver) Resolve(path string) (Preview, bool, error) {
	p, err := r.store.GetByPath(path)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Preview{}, false, err
	}
	p, err = r.store.GetDefault()
	if err == nil {
		return p, true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return Preview{}, false, nil
	}
	return Preview{}, false, err
}
