package flash

import (
	"context"
	"errors"
	"time"
)

// Flash is the one-shot state carried from an update to the next read:
// the outcome message and, for guests, the access token needed to render
// the booking again without re-prompting for it.
type Flash struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// TTL bounds how long an unconsumed ticket survives.
const TTL = 5 * time.Minute

var ErrNotFound = errors.New("flash: ticket not found")

// Store hands out single-use tickets. Take returns a ticket's payload
// exactly once; any later Take for the same id fails.
type Store interface {
	Put(ctx context.Context, f Flash) (string, error)
	Take(ctx context.Context, id string) (*Flash, error)
}
