package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"tlist/internal/app"
	"tlist/internal/config"
	"tlist/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, mutate func(*config.Config)) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Type = config.StorageInMemory
	if mutate != nil {
		mutate(cfg)
	}

	a := app.New(cfg)
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(a.Shutdown)
	return a
}

func request(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestApp_EndToEnd(t *testing.T) {
	a := newApp(t, nil)
	h := a.Router()

	w := request(t, h, http.MethodPost, "/categories", `{"name": "Work", "color": "#112233"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	categoryID := created["id"]

	w = request(t, h, http.MethodPost, "/tasks", `{"title": "low", "priority": "low"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = request(t, h, http.MethodPost, "/tasks", `{"title": " report ", "priority": "high", "category": "`+categoryID+`"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = request(t, h, http.MethodPost, "/tasks", `{"title": "   "}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = request(t, h, http.MethodGet, "/tasks", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Tasks []struct {
			Title string `json:"title"`
		} `json:"tasks"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list.Tasks, 2)
	assert.Equal(t, "report", list.Tasks[0].Title)
	assert.Equal(t, "low", list.Tasks[1].Title)

	w = request(t, h, http.MethodPut, "/view", `{"activeCategory": "`+categoryID+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = request(t, h, http.MethodGet, "/tasks", "", nil)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list.Tasks, 1)

	w = request(t, h, http.MethodDelete, "/categories/"+categoryID, "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = request(t, h, http.MethodGet, "/tasks/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total": 2, "completed": 0, "percentage": 0}`, w.Body.String())

	w = request(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = request(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tlist_store_mutations_total{operation="add_task"} 2`)
	assert.Contains(t, w.Body.String(), "tlist_tasks 2")
}

func TestApp_IdentityHeaderSetsOwner(t *testing.T) {
	a := newApp(t, nil)
	h := a.Router()

	w := request(t, h, http.MethodPost, "/tasks", `{"title": "mine"}`, map[string]string{middleware.UserIDHeader: "u-1"})
	require.Equal(t, http.StatusCreated, w.Code)

	tasks := a.Service().AllTasks(context.Background())
	require.Len(t, tasks, 1)
	assert.Equal(t, "u-1", tasks[0].UserID)
}

func TestApp_CORS(t *testing.T) {
	a := newApp(t, func(c *config.Config) {
		c.HTTP.CORSOrigins = []string{"http://localhost"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "http://localhost")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestApp_FileStoragePersists(t *testing.T) {
	dir := t.TempDir()
	setup := func(c *config.Config) {
		c.Storage.Type = config.StorageFile
		c.Storage.DataDir = dir
	}

	first := app.New(func() *config.Config { c := config.Default(); setup(c); return c }())
	require.NoError(t, first.Init(context.Background()))
	_, err := first.Service().AddDailyTask(context.Background(), "stretch")
	require.NoError(t, err)
	first.Shutdown()

	second := newApp(t, setup)
	daily := second.Service().DailyTasks(context.Background())
	require.Len(t, daily, 1)
	assert.Equal(t, "stretch", daily[0].Title)
	assert.FileExists(t, filepath.Join(dir, "tlist-storage.json"))
}

func TestApp_SQLiteStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tlist.db")
	a := newApp(t, func(c *config.Config) {
		c.Storage.Type = config.StorageSQLite
		c.Storage.SQLitePath = path
	})

	_, err := a.Service().AddCategory(context.Background(), "Home", "")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
