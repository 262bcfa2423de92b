package sharecraft

// Preview is a per-path social preview override stored in SQLite. Records
// flagged as default act as the fallback for paths without their own entry.
type Preview struct {
	ID          int64  `json:"id"`
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsDefault   bool   `json:"is_default"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// AuthStatus is the per-request authentication result. It is set on the
// request context by the requireSession gate and read by handlers that need
// the acting user, rather than living in ambient global state.
type AuthStatus struct {
	Authenticated bool
	Username      string
}

// RecentPage is a dashboard row describing a recently updated override.
type RecentPage struct {
	URL          string
	PreviewType  string // "Default" or "Custom"
	LastModified string
}

// DashboardStats aggregates the counters shown on the admin panel.
type DashboardStats struct {
	Username       string
	TotalPages     int
	CustomPreviews int
	Pages          []RecentPage
}
