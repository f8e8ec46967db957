package speller

import (
	"errors"
	"testing"

	"github.com/furlang/coretor/pkg/dictionary"
)

func TestPhoneticIndexCandidates(t *testing.T) {
	store := dictionary.NewWordStore()
	store.Insert("cjase", 50)
	store.Insert("cjasse", 10)
	store.Insert("furlan", 192)

	idx := BuildPhoneticIndex(store)

	// cjasse collapses to the same keys as cjase, so each is the other's
	// candidate, and neither is its own.
	got := idx.CandidatesFor("cjasse")
	if len(got) != 1 || got[0].Word != "cjase" {
		t.Fatalf("CandidatesFor(cjasse) = %v, want [cjase]", words(got))
	}
	got = idx.CandidatesFor("cjase")
	if len(got) != 1 || got[0].Word != "cjasse" {
		t.Fatalf("CandidatesFor(cjase) = %v, want [cjasse]", words(got))
	}

	// a query absent from the store still resolves through its keys
	got = idx.CandidatesFor("cjaze")
	if len(got) == 0 {
		t.Fatal("CandidatesFor(cjaze) found nothing")
	}
	for _, e := range got {
		if e.Word == "furlan" {
			t.Error("furlan must not share keys with cjaze")
		}
	}
}

func TestPhoneticIndexDedup(t *testing.T) {
	store := dictionary.NewWordStore()
	store.Insert("aghe", 30)
	store.Insert("ore", 40)

	idx := BuildPhoneticIndex(store)

	// entries indexed under both keys must come back once
	got := idx.CandidatesFor("âghe")
	seen := make(map[string]int)
	for _, e := range got {
		seen[e.Word]++
	}
	for w, n := range seen {
		if n > 1 {
			t.Errorf("candidate %q returned %d times", w, n)
		}
	}
}

func TestFrequencyTable(t *testing.T) {
	table := BuildFrequencyTable([]dictionary.WordPair{
		{Word: "cjase", Frequency: 50},
		{Word: "Furlan", Frequency: 192},
		{Word: "cjase", Frequency: 60},
		{Word: "", Frequency: 9},
	})
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got := table.Score("cjase"); got != 60 {
		t.Errorf("Score(cjase) = %d, duplicates keep the last value", got)
	}
	if got := table.Score("FURLAN"); got != 192 {
		t.Errorf("Score(FURLAN) = %d, want 192", got)
	}
	if got := table.Score("nosta"); got != 0 {
		t.Errorf("Score(nosta) = %d, want 0", got)
	}
}

func TestBuildSnapshotRejectsNegativeFrequency(t *testing.T) {
	_, err := BuildSnapshot(
		[]dictionary.WordPair{{Word: "cjase", Frequency: -1}},
		nil, nil,
	)
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("got %v, want DataIntegrityError", err)
	}
}

func words(entries []*dictionary.WordEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Word
	}
	return out
}
