package sharecraft

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteDriverRegistered(t *testing.T) {
	for _, name := range sql.Drivers() {
		if name == "sqlite" {
			return
		}
	}
	t.Fatalf(`driver "sqlite" not registered; got %v`, sql.Drivers())
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "previews.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreate(t *testing.T, s *Store, p Preview) Preview {
	t.Helper()
	created, err := s.Create(p)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", p.Path, err)
	}
	return created
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	s := setupTestStore(t)

	got := mustCreate(t, s, Preview{
		Path:        "/posts/launch",
		Title:       "Launch",
		Description: "We shipped",
		ImageURL:    "https://cdn.example.com/launch.jpg",
	})

	if got.ID == 0 {
		t.Error("ID should be assigned")
	}
	if got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Error("timestamps should be set")
	}
	if got.IsDefault {
		t.Error("IsDefault should be false")
	}
}

func TestCreateDuplicatePath(t *testing.T) {
	s := setupTestStore(t)

	mustCreate(t, s, Preview{Path: "/posts/one", Title: "t", Description: "d", ImageURL: "u"})

	_, err := s.Create(Preview{Path: "/posts/one", Title: "other", Description: "d", ImageURL: "u"})
	if !errors.Is(err, ErrDuplicatePath) {
		t.Fatalf("expected ErrDuplicatePath, got %v", err)
	}

	// Store unchanged afterward.
	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("record count = %d, want 1", len(all))
	}
	if all[0].Title != "t" {
		t.Errorf("existing record modified: Title = %q", all[0].Title)
	}
}

func TestListAllOrderedByIDDescending(t *testing.T) {
	s := setupTestStore(t)

	mustCreate(t, s, Preview{Path: "/a", Title: "t", Description: "d", ImageURL: "u"})
	mustCreate(t, s, Preview{Path: "/b", Title: "t", Description: "d", ImageURL: "u"})
	mustCreate(t, s, Preview{Path: "/c", Title: "t", Description: "d", ImageURL: "u"})

	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("record count = %d, want 3", len(all))
	}
	if all[0].Path != "/c" || all[2].Path != "/a" {
		t.Errorf("wrong order: %q, %q, %q", all[0].Path, all[1].Path, all[2].Path)
	}
}

func TestUpdate(t *testing.T) {
	s := setupTestStore(t)

	created := mustCreate(t, s, Preview{Path: "/p", Title: "old", Description: "d", ImageURL: "u"})

	updated, err := s.Update(created.ID, Preview{
		Path:        "/p",
		Title:       "new",
		Description: "d2",
		ImageURL:    "u2",
		IsDefault:   true,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "new" || updated.Description != "d2" || !updated.IsDefault {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("CreatedAt changed on update: %q -> %q", created.CreatedAt, updated.CreatedAt)
	}
}

func TestUpdateMissingID(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Update(999, Preview{Path: "/p", Title: "t", Description: "d", ImageURL: "u"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePathCollision(t *testing.T) {
	s := setupTestStore(t)

	mustCreate(t, s, Preview{Path: "/a", Title: "t", Description: "d", ImageURL: "u"})
	b := mustCreate(t, s, Preview{Path: "/b", Title: "t", Description: "d", ImageURL: "u"})

	_, err := s.Update(b.ID, Preview{Path: "/a", Title: "t", Description: "d", ImageURL: "u"})
	if !errors.Is(err, ErrDuplicatePath) {
		t.Fatalf("expected ErrDuplicatePath, got %v", err)
	}
}

func TestDeleteIsSilentOnMissingID(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Delete(12345); err != nil {
		t.Fatalf("Delete of missing id should be a no-op, got %v", err)
	}
}

func TestDeleteRemovesFromList(t *testing.T) {
	s := setupTestStore(t)

	created := mustCreate(t, s, Preview{Path: "/p", Title: "t", Description: "d", ImageURL: "u"})

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("record count after delete = %d, want 0", len(all))
	}
}

func TestGetByPath(t *testing.T) {
	s := setupTestStore(t)

	mustCreate(t, s, Preview{Path: "/posts/x", Title: "X", Description: "d", ImageURL: "u"})

	got, err := s.GetByPath("/posts/x")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if got.Title != "X" {
		t.Errorf("Title = %q, want %q", got.Title, "X")
	}

	_, err = s.GetByPath("/missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDefaultLowestIDWins(t *testing.T) {
	s := setupTestStore(t)

	first := mustCreate(t, s, Preview{Path: "/d1", Title: "first", Description: "d", ImageURL: "u", IsDefault: true})
	mustCreate(t, s, Preview{Path: "/d2", Title: "second", Description: "d", ImageURL: "u", IsDefault: true})

	got, err := s.GetDefault()
	if err != nil {
		t.Fatalf("GetDefault failed: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("GetDefault picked id %d, want oldest default %d", got.ID, first.ID)
	}
}

func TestCounts(t *testing.T) {
	s := setupTestStore(t)

	mustCreate(t, s, Preview{Path: "/a", Title: "t", Description: "d", ImageURL: "u"})
	mustCreate(t, s, Preview{Path: "/b", Title: "t", Description: "d", ImageURL: "u"})
	mustCreate(t, s, Preview{Path: "/c", Title: "t", Description: "d", ImageURL: "u", IsDefault: true})

	total, err := s.CountAll()
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	custom, err := s.CountCustom()
	if err != nil {
		t.Fatalf("CountCustom failed: %v", err)
	}
	if total != 3 {
		t.Errorf("CountAll = %d, want 3", total)
	}
	if custom != 2 {
		t.Errorf("CountCustom = %d, want 2", custom)
	}
}

func TestRecentPages(t *testing.T) {
	s := setupTestStore(t)

	mustCreate(t, s, Preview{Path: "/a", Title: "t", Description: "d", ImageURL: "u"})
	mustCreate(t, s, Preview{Path: "/b", Title: "t", Description: "d", ImageURL: "u", IsDefault: true})

	pages, err := s.RecentPages(10)
	if err != nil {
		t.Fatalf("RecentPages failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("page count = %d, want 2", len(pages))
	}
	types := map[string]string{}
	for _, p := range pages {
		types[p.URL] = p.PreviewType
	}
	if types["/a"] != "Custom" || types["/b"] != "Default" {
		t.Errorf("preview types = %v", types)
	}
}
