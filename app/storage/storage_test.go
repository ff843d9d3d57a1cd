package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalKeys(t *testing.T) {
	refs := []string{"vestido-1.jpg", "https://cdn.example.com/a.jpg", "", "http://x/y.png", "falda.png"}
	assert.Equal(t, []string{"vestido-1.jpg", "falda.png"}, InternalKeys(refs))
	assert.Nil(t, InternalKeys([]string{"https://cdn.example.com/a.jpg"}))
}

func TestURLFor(t *testing.T) {
	s := NewMemoryStorage()
	assert.Equal(t, "https://cdn.example.com/a.jpg", URLFor(s, "https://cdn.example.com/a.jpg"))
	assert.Equal(t, "/memory/a.jpg", URLFor(s, "a.jpg"))
	assert.Equal(t, "", URLFor(s, ""))
}

func TestHostedStorageRemove(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := NewHostedStorage(srv.URL+"/", "secret", "productos")
	require.NoError(t, s.Remove(context.Background(), []string{"a.jpg", "b.jpg"}))

	assert.Equal(t, "DELETE /storage/v1/object/productos", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, gotBody["prefixes"])
}

func TestHostedStorageUploadAndErrors(t *testing.T) {
	var gotPath, gotType, gotBody string
	status := http.StatusOK

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	s := NewHostedStorage(srv.URL, "secret", "productos")
	require.NoError(t, s.Upload(context.Background(), "polera-1.jpg", "image/jpeg", strings.NewReader("jpeg")))
	assert.Equal(t, "/storage/v1/object/productos/polera-1.jpg", gotPath)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, "jpeg", gotBody)

	status = http.StatusInternalServerError
	assert.Error(t, s.Remove(context.Background(), []string{"a.jpg"}))

	assert.Equal(t, srv.URL+"/storage/v1/object/public/productos/polera-1.jpg", s.PublicURL("polera-1.jpg"))
}

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Upload(ctx, "polera.jpg", "image/jpeg", strings.NewReader("data")))

	data, err := os.ReadFile(filepath.Join(dir, "polera.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
	assert.Equal(t, "/uploads/polera.jpg", s.PublicURL("polera.jpg"))

	// Traversal stays inside the upload dir.
	require.NoError(t, s.Upload(ctx, "../escape.jpg", "image/jpeg", strings.NewReader("x")))
	_, err = os.Stat(filepath.Join(dir, "escape.jpg"))
	assert.NoError(t, err)

	require.NoError(t, s.Remove(ctx, []string{"polera.jpg", "missing.jpg"}))
	_, err = os.Stat(filepath.Join(dir, "polera.jpg"))
	assert.True(t, os.IsNotExist(err))
}
