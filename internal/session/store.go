package session

import "context"

// Store keeps the last clicked region per UI session. A missing entry reads
// as the empty string, not an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, state string) error
	Clear(ctx context.Context, sessionID string) error
}
