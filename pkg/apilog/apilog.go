package apilog

import "context"

// Entry is one recorded API request. Response bodies are only kept for error
// responses.
type Entry struct {
	Method     string
	Path       string
	StatusCode int
	DurationMS int64

	UserAgent   string
	IPAddress   string
	QueryParams map[string]string
	Response    []byte
}

// Recorder persists request entries. A failure to record must never fail the
// request being logged.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
