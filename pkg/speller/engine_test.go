package speller

import (
	"errors"
	"testing"

	"github.com/furlang/coretor/pkg/dictionary"
)

// testSnapshot builds a small but realistic Friulian dictionary covering the
// paths the pipeline has to get right: elision articles, an elidable noun, a
// curated misspelling and a pair of phonetically close forms.
func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	words := []dictionary.WordPair{
		{Word: "aghe", Frequency: 30},
		{Word: "la", Frequency: 100},
		{Word: "ore", Frequency: 40},
		{Word: "une", Frequency: 80},
		{Word: "di", Frequency: 255},
		{Word: "cjase", Frequency: 50},
		{Word: "parol", Frequency: 20},
		{Word: "furlan", Frequency: 192},
	}
	errs := []dictionary.ErrorEntry{
		{Wrong: "cjasse", Corrections: []string{"cjase di"}},
	}
	elidable := []string{"aghe", "ore"}

	snap, err := BuildSnapshot(words, errs, elidable)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	return snap
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	eng := New(DefaultOptions())
	eng.Swap(testSnapshot(t))
	return eng
}

func TestCheckWord(t *testing.T) {
	eng := testEngine(t)

	cases := []struct {
		token string
		want  bool
	}{
		{"furlan", true},
		{"FURLAN", true},
		{"Furlan", true},
		{"cjase", true},
		{"cjasse", false},
		{"l'aghe", false},
		{"xyz", false},
	}
	for _, tc := range cases {
		got, err := eng.CheckWord(tc.token)
		if err != nil {
			t.Fatalf("CheckWord(%q): %v", tc.token, err)
		}
		if got != tc.want {
			t.Errorf("CheckWord(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestSuggestKnownWordIsEmpty(t *testing.T) {
	eng := testEngine(t)

	got, err := eng.Suggest("cjase", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("known word produced suggestions: %v", got)
	}
}

func TestSuggestErrorMapPrecedence(t *testing.T) {
	eng := testEngine(t)

	// "cjasse" has a curated correction and also collides phonetically with
	// "cjase". The curated entry must come first regardless of scores.
	got, err := eng.Suggest("cjasse", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("expected curated and phonetic candidates, got %v", got)
	}
	if got[0] != "cjase di" {
		t.Errorf("first suggestion = %q, want curated %q", got[0], "cjase di")
	}
	if got[1] != "cjase" {
		t.Errorf("second suggestion = %q, want phonetic %q", got[1], "cjase")
	}
}

func TestSuggestElision(t *testing.T) {
	eng := testEngine(t)

	cases := []struct {
		token string
		first string
	}{
		// the contracted variant equals the input, so the expansion leads
		{"l'aghe", "la aghe"},
		{"un'ore", "une ore"},
		{"d'aghe", "di aghe"},
	}
	for _, tc := range cases {
		got, err := eng.Suggest(tc.token, 10)
		if err != nil {
			t.Fatalf("Suggest(%q): %v", tc.token, err)
		}
		if len(got) == 0 {
			t.Fatalf("Suggest(%q) returned nothing", tc.token)
		}
		if got[0] != tc.first {
			t.Errorf("Suggest(%q)[0] = %q, want %q", tc.token, got[0], tc.first)
		}
	}
}

func TestSuggestElisionContractionVariant(t *testing.T) {
	eng := testEngine(t)

	// "ore" is elidable, so when correcting a misspelled base word behind
	// an l' contraction the contracted form is offered alongside the
	// expansion. The accent folds away phonetically, so "ôre" resolves to
	// "ore" at distance 0 and the contracted variant ranks first.
	got, err := eng.Suggest("l'ôre", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !contains(got, "l'ore") {
		t.Errorf("expected contracted variant l'ore in %v", got)
	}
	if !contains(got, "la ore") {
		t.Errorf("expected expansion la ore in %v", got)
	}
}

func TestSuggestHyphenCompound(t *testing.T) {
	eng := testEngine(t)

	got, err := eng.Suggest("cjase-parol", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("hyphen compound produced no suggestions")
	}
	if got[0] != "cjase parol" {
		t.Errorf("Suggest(cjase-parol)[0] = %q, want %q", got[0], "cjase parol")
	}
}

func TestSuggestHyphenPartUnresolvable(t *testing.T) {
	eng := testEngine(t)

	// A part with no candidates at all kills the whole segmentation rather
	// than producing a half-corrected compound.
	got, err := eng.Suggest("cjase-qqqqqq", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	for _, s := range got {
		if s == "cjase " || s == "cjase" {
			t.Errorf("partial compound leaked into results: %v", got)
		}
	}
}

func TestSuggestCaseRestoration(t *testing.T) {
	eng := testEngine(t)

	cases := []struct {
		token string
		first string
	}{
		{"CJASSE", "CJASE DI"},
		{"Cjasse", "Cjase di"},
		{"cjasse", "cjase di"},
		// mixed case falls back to lowercase output
		{"cJaSsE", "cjase di"},
	}
	for _, tc := range cases {
		got, err := eng.Suggest(tc.token, 10)
		if err != nil {
			t.Fatalf("Suggest(%q): %v", tc.token, err)
		}
		if len(got) == 0 {
			t.Fatalf("Suggest(%q) returned nothing", tc.token)
		}
		if got[0] != tc.first {
			t.Errorf("Suggest(%q)[0] = %q, want %q", tc.token, got[0], tc.first)
		}
	}
}

func TestSuggestDetailedSources(t *testing.T) {
	eng := testEngine(t)

	got, err := eng.SuggestDetailed("cjasse", 10)
	if err != nil {
		t.Fatalf("SuggestDetailed: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("expected at least 2 suggestions, got %v", got)
	}
	if got[0].Source != SourceErrorMap || got[0].Rank != 1 {
		t.Errorf("first = %+v, want error-map rank 1", got[0])
	}
	if got[1].Source != SourcePhonetic {
		t.Errorf("second = %+v, want phonetic", got[1])
	}
	if got[1].Distance != 1 {
		t.Errorf("phonetic distance = %d, want 1", got[1].Distance)
	}
}

func TestSuggestDeterministic(t *testing.T) {
	eng := testEngine(t)

	first, err := eng.Suggest("cjasse", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := eng.Suggest("cjasse", 10)
		if err != nil {
			t.Fatalf("Suggest: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d != %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: order changed at %d: %q != %q", i, j, again[j], first[j])
			}
		}
	}
}

func TestSuggestLimit(t *testing.T) {
	eng := testEngine(t)

	got, err := eng.Suggest("cjasse", 1)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("limit 1 returned %d suggestions", len(got))
	}
	if got[0] != "cjase di" {
		t.Errorf("truncation dropped the best candidate: %v", got)
	}
}

func TestSuggestNeverEchoesInput(t *testing.T) {
	eng := testEngine(t)

	for _, token := range []string{"cjasse", "l'aghe", "un'ore", "CJASSE"} {
		got, err := eng.Suggest(token, 10)
		if err != nil {
			t.Fatalf("Suggest(%q): %v", token, err)
		}
		for _, s := range got {
			if s == token {
				t.Errorf("Suggest(%q) echoed the input", token)
			}
		}
	}
}

func TestValidation(t *testing.T) {
	eng := testEngine(t)

	var invalid *InvalidInputError

	if _, err := eng.CheckWord(""); !errors.As(err, &invalid) {
		t.Errorf("empty token: got %v, want InvalidInputError", err)
	}
	if _, err := eng.Suggest("", 10); !errors.As(err, &invalid) {
		t.Errorf("empty token: got %v, want InvalidInputError", err)
	}
	if _, err := eng.Suggest("cjasse", 0); !errors.As(err, &invalid) {
		t.Errorf("zero limit: got %v, want InvalidInputError", err)
	}
	if _, err := eng.Suggest(string([]byte{0xff, 0xfe}), 10); !errors.As(err, &invalid) {
		t.Errorf("invalid UTF-8: got %v, want InvalidInputError", err)
	}

	long := make([]rune, 65)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := eng.CheckWord(string(long)); !errors.As(err, &invalid) {
		t.Errorf("overlong token: got %v, want InvalidInputError", err)
	}
}

func TestNotReady(t *testing.T) {
	eng := New(DefaultOptions())

	var notReady *EngineNotReadyError
	if _, err := eng.CheckWord("cjase"); !errors.As(err, &notReady) {
		t.Errorf("got %v, want EngineNotReadyError", err)
	}
	if _, err := eng.Suggest("cjasse", 10); !errors.As(err, &notReady) {
		t.Errorf("got %v, want EngineNotReadyError", err)
	}
	if eng.Ready() {
		t.Error("Ready() = true before any snapshot")
	}
}

func TestSwapInstallsSnapshot(t *testing.T) {
	eng := New(DefaultOptions())
	eng.Swap(testSnapshot(t))

	if !eng.Ready() {
		t.Fatal("Ready() = false after Swap")
	}
	ok, err := eng.CheckWord("furlan")
	if err != nil || !ok {
		t.Fatalf("CheckWord after Swap = %v, %v", ok, err)
	}
}

func TestConcurrentQueries(t *testing.T) {
	eng := testEngine(t)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				if _, err := eng.Suggest("cjasse", 5); err != nil {
					t.Errorf("Suggest: %v", err)
					return
				}
				if _, err := eng.CheckWord("furlan"); err != nil {
					t.Errorf("CheckWord: %v", err)
					return
				}
			}
		}()
	}
	// one writer swapping snapshots while readers run
	go func() {
		defer func() { done <- struct{}{} }()
		for j := 0; j < 50; j++ {
			eng.Swap(testSnapshot(t))
		}
	}()
	for i := 0; i < 9; i++ {
		<-done
	}
}

func TestClassifyCase(t *testing.T) {
	cases := []struct {
		token string
		want  caseClass
	}{
		{"cjase", caseLower},
		{"Cjase", caseUcFirst},
		{"CJASE", caseUpper},
		{"cJaSe", caseLower},
		{"C", caseUpper},
		{"l'aghe", caseLower},
		{"L'AGHE", caseUpper},
	}
	for _, tc := range cases {
		if got := classifyCase(tc.token); got != tc.want {
			t.Errorf("classifyCase(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
