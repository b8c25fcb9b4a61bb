package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
	"github.com/ninocam2680/slidegen-backend/pkg/errors"
)

func TestSaveAndGetDeck(t *testing.T) {
	dir := t.TempDir()
	svc := New(filepath.Join(dir, "out"), "/files", logger.NewNop())

	url, err := svc.SaveDeck(context.Background(), "abc", []byte("PKdata"))
	require.NoError(t, err)
	assert.Equal(t, "/files/abc.pptx", url)

	data, err := svc.GetDeck(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("PKdata"), data)
}

func TestSaveDeckCreatesBasePath(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "nested", "out")
	svc := New(base, "/files", logger.NewNop())

	_, err := svc.SaveDeck(context.Background(), "abc", []byte("x"))
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetDeckNotFound(t *testing.T) {
	svc := New(t.TempDir(), "/files", logger.NewNop())

	_, err := svc.GetDeck(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}
