package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSlotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.json")
	slot := NewFileSlot(path)
	ctx := context.Background()

	_, err := slot.Load(ctx)
	assert.ErrorIs(t, err, ErrEmptySlot)

	require.NoError(t, slot.Save(ctx, []byte(`{"id":"u1"}`)))
	data, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, string(data))

	require.NoError(t, slot.Clear(ctx))
	_, err = slot.Load(ctx)
	assert.ErrorIs(t, err, ErrEmptySlot)

	// Clearing an already-empty slot is not an error.
	assert.NoError(t, slot.Clear(ctx))
}

func TestFileSlotEmptyFileIsEmptySlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := NewFileSlot(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrEmptySlot)
}

func TestFileSlotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.json")
	slot := NewFileSlot(path)
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, []byte("first")))
	require.NoError(t, slot.Save(ctx, []byte("second")))

	data, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestMemorySlotRoundTrip(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()

	_, err := slot.Load(ctx)
	assert.ErrorIs(t, err, ErrEmptySlot)

	require.NoError(t, slot.Save(ctx, []byte("payload")))
	data, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	// Load hands out a copy.
	data[0] = 'X'
	again, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(again))

	require.NoError(t, slot.Clear(ctx))
	_, err = slot.Load(ctx)
	assert.ErrorIs(t, err, ErrEmptySlot)
}
