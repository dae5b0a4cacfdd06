package project

import (
	"errors"
	"testing"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
)

func TestCanonicalSections(t *testing.T) {
	got, err := canonicalSections([]string{"design", catalog.Design, " Purchasing ", catalog.Sales})
	if err != nil {
		t.Fatalf("canonicalSections() error = %v", err)
	}
	want := []string{catalog.Design, catalog.Purchasing, catalog.Sales}
	if len(got) != len(want) {
		t.Fatalf("canonicalSections() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("canonicalSections()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := canonicalSections([]string{"gardening"}); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("canonicalSections(unknown) error = %v, want ErrUnknownSection", err)
	}
}
