package sharecraft

import "testing"

func TestResolveExactMatch(t *testing.T) {
	s := setupTestStore(t)
	r := NewResolver(s)

	created := mustCreate(t, s, Preview{Path: "/posts/x", Title: "X", Description: "d", ImageURL: "u"})
	mustCreate(t, s, Preview{Path: "/fallback", Title: "Fallback", Description: "d", ImageURL: "u", IsDefault: true})

	got, ok, err := r.Resolve("/posts/x")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ID != created.ID || got.Title != "X" {
		t.Errorf("Resolve returned %+v, want the exact match", got)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	s := setupTestStore(t)
	r := NewResolver(s)

	mustCreate(t, s, Preview{Path: "/fallback", Title: "Fallback", Description: "d", ImageURL: "u", IsDefault: true})

	got, ok, err := r.Resolve("/no/override/here")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !ok {
		t.Fatal("expected the default record")
	}
	if got.Title != "Fallback" {
		t.Errorf("Resolve returned %+v, want the default", got)
	}
}

func TestResolveNoRecords(t *testing.T) {
	s := setupTestStore(t)
	r := NewResolver(s)

	_, ok, err := r.Resolve("/anything")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ok {
		t.Error("expected no match with an empty store")
	}
}

func TestResolveStoreFailureReturnsError(t *testing.T) {
	s := setupTestStore(t)
	r := NewResolver(s)
	s.Close()

	_, ok, err := r.Resolve("/anything")
	if err == nil {
		t.Fatal("expected an error from a closed store")
	}
	if ok {
		t.Error("ok should be false on store failure")
	}
}
