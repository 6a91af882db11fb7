package flash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreTakeIsOneShot(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.Put(ctx, Flash{
		Status:      StatusSuccess,
		Message:     "Your booking has been updated.",
		AccessToken: "tok",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	f, err := store.Take(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, f.Status)
	assert.Equal(t, "Your booking has been updated.", f.Message)
	assert.Equal(t, "tok", f.AccessToken)

	// A ticket is consumed on first read.
	_, err = store.Take(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownTicket(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Take(context.Background(), "no-such-ticket")
	assert.ErrorIs(t, err, ErrNotFound)
}
