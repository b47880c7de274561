package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/scribe/internal/database"
	"github.com/mrlokans/scribe/internal/database/cache"
	"github.com/mrlokans/scribe/internal/database/dictionary"
	"github.com/mrlokans/scribe/internal/services"
	"github.com/mrlokans/scribe/internal/spellcheck/providers"
)

func setupRouter(t *testing.T) (*gin.Engine, *database.Database, string) {
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	docsDir := t.TempDir()

	registry := providers.NewRegistry("", "en")
	registry.InitializeAll(context.Background())
	checker := services.NewChecker(registry, cache.NewRepository(db.DB), dictionary.NewRepository(db.DB))

	router := NewRouter(RouterConfig{
		Database:     db,
		Registry:     registry,
		Checker:      checker,
		DocumentsDir: docsDir,
		Version:      "test",
	})

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return router, db, docsDir
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database": "ok"`)
	assert.Contains(t, w.Body.String(), "wordlist")
}

func TestFiles_PutGetDelete(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/files/draft.txt",
		strings.NewReader(`{"content": "hello editor"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/files/draft.txt", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello editor")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/files", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "draft.txt")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/files/draft.txt", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/files/draft.txt", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFiles_RejectsTraversal(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/files/..", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilesController_Resolve(t *testing.T) {
	f := NewFilesController(filepath.Join(t.TempDir(), "docs"), nil)

	for _, name := range []string{"", ".", "..", "../secret.txt", "a/b.txt", `a\b.txt`} {
		_, ok := f.resolve(name)
		assert.False(t, ok, "name %q should be rejected", name)
	}

	path, ok := f.resolve("notes.md")
	require.True(t, ok)
	assert.Equal(t, "notes.md", filepath.Base(path))
}

func TestSettings_Defaults(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"default_language":"en"`)
	assert.Contains(t, w.Body.String(), `"prediction_engine":"heuristic"`)
}

func TestSettings_UpdatePreferredEngine(t *testing.T) {
	router, db, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/settings",
		strings.NewReader(`{"preferred_engine": "wordlist"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"preferred_engine":"wordlist"`)

	setting, err := db.GetSetting("preferred_engine")
	require.NoError(t, err)
	assert.Equal(t, "wordlist", setting.Value)
}

func TestSettings_RejectsUnknownEngine(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/settings",
		strings.NewReader(`{"preferred_engine": "hunspell"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown engine")
}
