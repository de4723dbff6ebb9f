package stores

import "testing"

func TestByIDKnownStore(t *testing.T) {
	store := ByID("shufersal")
	if store.ID != "shufersal" {
		t.Fatalf("got %q", store.ID)
	}
	if store.Category != CategorySupermarket {
		t.Fatalf("category = %q", store.Category)
	}
}

func TestByIDUnknownFallsBackToOther(t *testing.T) {
	store := ByID("no-such-store")
	if store.ID != "other" {
		t.Fatalf("got %q, want other", store.ID)
	}
}
