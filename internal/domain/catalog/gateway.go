package catalog

import (
	"context"
	"encoding/json"
)

// Kind selects which catalog entity a handle lookup targets.
type Kind string

const (
	KindProduct    Kind = "product"
	KindCollection Kind = "collection"
)

// IsValid reports whether the kind is one of the known catalog kinds
func (k Kind) IsValid() bool {
	return k == KindProduct || k == KindCollection
}

// Envelope is the uniform response wrapper for catalog lookups. Status is
// HTTP-status-like; Body is the upstream-shaped JSON on success, or a
// {"error": "..."} object on failure. Envelopes are built per request and
// never persisted.
type Envelope struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// NewEnvelope wraps an upstream payload in a success envelope
func NewEnvelope(status int, body json.RawMessage) *Envelope {
	return &Envelope{Status: status, Body: body}
}

// NewErrorEnvelope builds a failure envelope with a caller-safe message
func NewErrorEnvelope(status int, message string) *Envelope {
	body, _ := json.Marshal(map[string]string{"error": message})
	return &Envelope{Status: status, Body: body}
}

// IsError reports whether the envelope carries a failure status
func (e *Envelope) IsError() bool {
	return e.Status >= 400
}

// Gateway queries the hosted commerce catalog. Upstream failures are
// normalized into the envelope (404 for absent entities, 500 for transport
// or provider errors); the error return is reserved for invalid input.
type Gateway interface {
	FetchByHandle(ctx context.Context, handle string, kind Kind) (*Envelope, error)
	Search(ctx context.Context, query string, limit int) (*Envelope, error)
}
