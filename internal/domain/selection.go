package domain

import "encoding/json"

// SelectionRequest carries a raw map-click payload from the presentation
// layer. Event is kept opaque here; decoding is the resolver's job.
type SelectionRequest struct {
	SessionID string          `json:"session_id,omitempty"`
	Event     json.RawMessage `json:"event"`
}

// SelectionResponse reports the canonical state resolved from a click.
// State is nil when the event did not contain a usable selection.
type SelectionResponse struct {
	SessionID string  `json:"session_id"`
	State     *string `json:"state"`
}
