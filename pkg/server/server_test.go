package server

import (
	"bytes"
	"io"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/furlang/coretor/pkg/dictionary"
	"github.com/furlang/coretor/pkg/speller"
)

func testEngine(t *testing.T) *speller.Engine {
	t.Helper()
	snap, err := speller.BuildSnapshot(
		[]dictionary.WordPair{
			{Word: "furlan", Frequency: 192},
			{Word: "cjase", Frequency: 50},
			{Word: "di", Frequency: 255},
		},
		[]dictionary.ErrorEntry{
			{Wrong: "cjasse", Corrections: []string{"cjase di"}},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	eng := speller.New(speller.DefaultOptions())
	eng.Swap(snap)
	return eng
}

// runServer feeds the encoded requests through a server instance and returns
// a decoder over everything it wrote.
func runServer(t *testing.T, engine *speller.Engine, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	var out bytes.Buffer
	srv := NewServerWithIO(engine, 64, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return msgpack.NewDecoder(&out)
}

func expectReady(t *testing.T, dec *msgpack.Decoder) {
	t.Helper()
	var status StatusResponse
	if err := dec.Decode(&status); err != nil {
		t.Fatalf("decode ready: %v", err)
	}
	if status.Status != "ready" {
		t.Fatalf("first message = %+v, want ready signal", status)
	}
}

func TestServerCheck(t *testing.T) {
	dec := runServer(t, testEngine(t),
		Request{ID: "r1", Cmd: "check", Token: "furlan"},
		Request{ID: "r2", Cmd: "check", Token: "cjasse"},
	)
	expectReady(t, dec)

	var resp CheckResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "r1" || !resp.Known {
		t.Errorf("check furlan = %+v, want known", resp)
	}
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "r2" || resp.Known {
		t.Errorf("check cjasse = %+v, want unknown", resp)
	}
}

func TestServerSuggest(t *testing.T) {
	dec := runServer(t, testEngine(t),
		Request{ID: "r1", Cmd: "suggest", Token: "cjasse", Limit: 10},
	)
	expectReady(t, dec)

	var resp SuggestResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "r1" || resp.Count < 2 {
		t.Fatalf("suggest = %+v, want at least 2 results", resp)
	}
	if resp.Suggestions[0].Word != "cjase di" || resp.Suggestions[0].Source != "error-map" {
		t.Errorf("first suggestion = %+v, want curated cjase di", resp.Suggestions[0])
	}
	if resp.Suggestions[1].Word != "cjase" || resp.Suggestions[1].Source != "phonetic" {
		t.Errorf("second suggestion = %+v, want phonetic cjase", resp.Suggestions[1])
	}
}

func TestServerInvalidToken(t *testing.T) {
	dec := runServer(t, testEngine(t),
		Request{ID: "r1", Cmd: "suggest", Token: ""},
	)
	expectReady(t, dec)

	var resp ErrorResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "r1" || resp.Code != 400 {
		t.Errorf("error = %+v, want code 400", resp)
	}
}

func TestServerNotReady(t *testing.T) {
	engine := speller.New(speller.DefaultOptions())
	dec := runServer(t, engine,
		Request{ID: "r1", Cmd: "check", Token: "furlan"},
	)
	expectReady(t, dec)

	var resp ErrorResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != 503 {
		t.Errorf("error = %+v, want code 503", resp)
	}
}

func TestServerUnknownCommand(t *testing.T) {
	dec := runServer(t, testEngine(t),
		Request{ID: "r1", Cmd: "frobnicate"},
	)
	expectReady(t, dec)

	var resp ErrorResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != 400 {
		t.Errorf("error = %+v, want code 400", resp)
	}
}

func TestServerHealth(t *testing.T) {
	dec := runServer(t, testEngine(t),
		Request{ID: "r1", Cmd: "health"},
	)
	expectReady(t, dec)

	var resp StatusResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "r1" || resp.Status != "ok" {
		t.Errorf("health = %+v, want ok", resp)
	}

	// nothing further on the stream
	var extra map[string]any
	if err := dec.Decode(&extra); err != io.EOF {
		t.Errorf("unexpected trailing message: %v %v", extra, err)
	}
}
