/*
Package server implements msgpack IPC for the Friulian speller.

The server package provides a minimal interface for spell checking using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports check and suggest requests.
Messages are processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured messages via stdin and receive responses through stdout.
Each message contains an ID field and other fields based on the operation type.

Check requests use this structure:

	{"id": "req_001", "cmd": "check", "t": "furlan"}

The server responds with the lookup verdict:

	{"id": "req_001", "k": true, "ms": 0}

Suggest requests add an optional limit:

	{"id": "req_002", "cmd": "suggest", "t": "cjasse", "l": 10}

and receive ranked corrections:

	{"id": "req_002", "s": [{"w": "cjase di", "src": "error-map"}, {"w": "cjase", "src": "phonetic"}], "c": 2, "ms": 1}

Invalid tokens answer with code 400, queries before the dictionary is
installed with code 503. Error responses include the request ID so clients
can match them to the originating call.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing latency in most cases.
*/
package server

// Request - incoming speller request
type Request struct {
	ID    string `msgpack:"id"`
	Cmd   string `msgpack:"cmd"` // "check", "suggest", "health"
	Token string `msgpack:"t,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
}

// SuggestionItem - minimal suggestion payload
type SuggestionItem struct {
	Word   string `msgpack:"w"`
	Source string `msgpack:"src"`
	Rank   int    `msgpack:"r,omitempty"`
}

// CheckResponse - verdict for a check request
type CheckResponse struct {
	ID        string `msgpack:"id"`
	Known     bool   `msgpack:"k"`
	TimeTaken int64  `msgpack:"ms"`
}

// SuggestResponse - ranked corrections for a suggest request
type SuggestResponse struct {
	ID          string           `msgpack:"id"`
	Suggestions []SuggestionItem `msgpack:"s"`
	Count       int              `msgpack:"c"`
	TimeTaken   int64            `msgpack:"ms"`
}

// StatusResponse - health and readiness payload
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
