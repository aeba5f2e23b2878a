package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutOpenDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "receipts"))
	require.NoError(t, err)

	blob := []byte("%PDF-1.4 fake receipt")
	require.NoError(t, store.Put(ctx, "order-1-1700000000000.pdf", bytes.NewReader(blob), int64(len(blob))))

	rc, err := store.Open(ctx, "order-1-1700000000000.pdf")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, blob, got)

	require.NoError(t, store.Delete(ctx, "order-1-1700000000000.pdf"))
	_, err = store.Open(ctx, "order-1-1700000000000.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	// 删除不存在的文件不报错
	assert.NoError(t, store.Delete(ctx, "order-1-1700000000000.pdf"))
}

func TestLocalStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "a.png", bytes.NewReader([]byte("png")), 3))
	err = store.Put(context.Background(), "b.png", bytes.NewReader([]byte("png")), 10)
	assert.ErrorContains(t, err, "short write")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.png", entries[0].Name())
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "../etc/passwd", "a/b.png", `a\b.png`} {
		assert.Error(t, ValidateName(name), name)
	}
	assert.NoError(t, ValidateName("order-12-1700000000000.jpg"))

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Open(context.Background(), "../secret")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, store.Put(context.Background(), "../x", bytes.NewReader(nil), 0))
}
