package speller

import (
	"errors"
	"testing"

	"github.com/furlang/coretor/pkg/dictionary"
)

func TestErrorMapLookup(t *testing.T) {
	m, err := BuildErrorMap([]dictionary.ErrorEntry{
		{Wrong: "cjasse", Corrections: []string{"cjase", "cjase di"}},
		{Wrong: "Sbalio", Corrections: []string{"sbali"}},
	})
	if err != nil {
		t.Fatalf("BuildErrorMap: %v", err)
	}

	got := m.Lookup("cjasse")
	if len(got) != 2 || got[0] != "cjase" || got[1] != "cjase di" {
		t.Errorf("Lookup(cjasse) = %v, order must follow the feed", got)
	}

	// keys fold to lowercase, both on build and on lookup
	if got := m.Lookup("SBALIO"); len(got) != 1 || got[0] != "sbali" {
		t.Errorf("Lookup(SBALIO) = %v, want [sbali]", got)
	}

	if got := m.Lookup("nosta"); got != nil {
		t.Errorf("Lookup(nosta) = %v, want nil", got)
	}
}

func TestErrorMapPlaceholderSlots(t *testing.T) {
	// Empty slots mark "no correction at this rank" in the legacy table.
	// They are dropped, and later slots still surface.
	m, err := BuildErrorMap([]dictionary.ErrorEntry{
		{Wrong: "torgule", Corrections: []string{"", "targule", ""}},
		{Wrong: "vueit", Corrections: []string{"", "", ""}},
	})
	if err != nil {
		t.Fatalf("BuildErrorMap: %v", err)
	}

	if got := m.Lookup("torgule"); len(got) != 1 || got[0] != "targule" {
		t.Errorf("Lookup(torgule) = %v, want [targule]", got)
	}
	// an all-placeholder entry vanishes entirely
	if got := m.Lookup("vueit"); got != nil {
		t.Errorf("Lookup(vueit) = %v, want nil", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestErrorMapMerge(t *testing.T) {
	m, err := BuildErrorMap([]dictionary.ErrorEntry{
		{Wrong: "frut", Corrections: []string{"fruts", ""}},
		{Wrong: "FRUT", Corrections: []string{"", "frute"}},
	})
	if err != nil {
		t.Fatalf("BuildErrorMap: %v", err)
	}
	got := m.Lookup("frut")
	if len(got) != 2 || got[0] != "fruts" || got[1] != "frute" {
		t.Errorf("merged Lookup(frut) = %v, want [fruts frute]", got)
	}
}

func TestErrorMapConflict(t *testing.T) {
	_, err := BuildErrorMap([]dictionary.ErrorEntry{
		{Wrong: "frut", Corrections: []string{"fruts"}},
		{Wrong: "frut", Corrections: []string{"frute"}},
	})
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("conflicting slots: got %v, want DataIntegrityError", err)
	}
}

func TestErrorMapEmptyKey(t *testing.T) {
	_, err := BuildErrorMap([]dictionary.ErrorEntry{
		{Wrong: "", Corrections: []string{"alc"}},
	})
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("empty key: got %v, want DataIntegrityError", err)
	}
}
