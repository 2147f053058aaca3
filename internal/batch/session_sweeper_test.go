package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/conversation"
)

type failingStore struct {
	conversation.Store
	err error
}

func (s failingStore) PurgeExpired(context.Context) (int, error) {
	return 0, s.err
}

func TestSessionSweeperPurges(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := conversation.NewMemoryStore(30 * time.Minute)

	stale := conversation.NewSession()
	stale.LastActiveAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.Put(context.Background(), stale))

	sweeper := NewSessionSweeper(store, logger)
	require.NoError(t, sweeper.Run(context.Background()))

	assert.Equal(t, 0, store.Len())
}

func TestSessionSweeperPropagatesStoreError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	storeErr := errors.New("store unavailable")

	sweeper := NewSessionSweeper(failingStore{err: storeErr}, logger)
	err := sweeper.Run(context.Background())

	assert.ErrorIs(t, err, storeErr)
}

func TestNewSessionSweeperPanicsOnNilStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Panics(t, func() {
		NewSessionSweeper(nil, logger)
	})
}
