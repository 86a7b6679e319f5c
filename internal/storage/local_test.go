package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	store := NewLocal(fsys)

	info, err := store.Put(ctx, "abc_invoice.pdf", strings.NewReader("%PDF-1.4"), PutObjectOptions{
		Size:        8,
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc_invoice.pdf", info.Key)
	assert.Equal(t, int64(8), info.Size)

	exists, err := afero.Exists(fsys, "abc_invoice.pdf.part")
	require.NoError(t, err)
	assert.False(t, exists, "temporary file must be renamed away")

	rc, got, err := store.Get(ctx, "abc_invoice.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), got.Size)

	require.NoError(t, store.Delete(ctx, "abc_invoice.pdf"))
	_, _, err = store.Get(ctx, "abc_invoice.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_DeleteMissingIsNotAnError(t *testing.T) {
	store := NewLocal(afero.NewMemMapFs())
	assert.NoError(t, store.Delete(context.Background(), "never-existed.pdf"))
}

func TestLocalStorage_NestedKey(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewLocal(fsys)

	_, err := store.Put(context.Background(), "2024/03/file.png", strings.NewReader("x"), PutObjectOptions{Size: -1})
	require.NoError(t, err)

	exists, _ := afero.Exists(fsys, "2024/03/file.png")
	assert.True(t, exists)
}

func TestLocalStorage_ShortWriteIsRejected(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewLocal(fsys)

	_, err := store.Put(context.Background(), "short.pdf", strings.NewReader("abc"), PutObjectOptions{Size: 10})
	assert.Error(t, err)

	exists, _ := afero.Exists(fsys, "short.pdf")
	assert.False(t, exists)
	exists, _ = afero.Exists(fsys, "short.pdf.part")
	assert.False(t, exists)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStorage_ReaderErrorCleansUp(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewLocal(fsys)

	_, err := store.Put(context.Background(), "broken.pdf", failingReader{}, PutObjectOptions{Size: -1})
	assert.ErrorContains(t, err, "client went away")

	exists, _ := afero.Exists(fsys, "broken.pdf.part")
	assert.False(t, exists)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store := NewLocal(afero.NewMemMapFs())
	ctx := context.Background()

	for _, key := range []string{"", "/etc/passwd", "../secret", "a/../../b", `..\win`} {
		_, err := store.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{Size: -1})
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	store := NewLocal(afero.NewMemMapFs())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "a.pdf", strings.NewReader("x"), PutObjectOptions{Size: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalDir(dir + "/uploads")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "f.pdf", strings.NewReader("data"), PutObjectOptions{Size: 4})
	require.NoError(t, err)

	_, err = NewLocalDir("")
	assert.Error(t, err)
}
