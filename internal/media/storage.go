package media

import "context"

// Storage persists processed images and returns a public URL for them.
type Storage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}
