package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestLocalStorageSaveAndGet(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), testLogger())
	assert.NoError(t, err)

	ctx := context.Background()
	key := store.JoinPath("reports", "abc", "report.html")

	err = store.Save(ctx, key, strings.NewReader("<html>report</html>"))
	assert.NoError(t, err)

	reader, err := store.Get(ctx, key)
	assert.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, "<html>report</html>", string(content))

	size, err := store.GetSize(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, int64(len("<html>report</html>")), size)

	exists, err := store.Exists(ctx, key)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStorageGetMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), testLogger())
	assert.NoError(t, err)

	_, err = store.Get(context.Background(), "reports/none.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), testLogger())
	assert.NoError(t, err)

	ctx := context.Background()
	err = store.Save(ctx, "report.html", strings.NewReader("x"))
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, "report.html"))

	exists, err := store.Exists(ctx, "report.html")
	assert.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "report.html"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), testLogger())
	assert.NoError(t, err)

	err = store.Save(context.Background(), "../escape.html", strings.NewReader("x"))
	assert.Error(t, err)

	assert.Error(t, store.ValidateKey("reports/../../etc/passwd"))
	assert.Error(t, store.ValidateKey(""))
	assert.NoError(t, store.ValidateKey("reports/abc/report.html"))
}

func TestLocalStorageEmptyBasePath(t *testing.T) {
	_, err := NewLocalStorage("", testLogger())
	assert.Error(t, err)
}
