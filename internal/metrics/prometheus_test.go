package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tlist/internal/metrics"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prom.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.Mutation("add_task")
	r.Mutation("add_task")
	r.Mutation("remove_task")
	r.SnapshotSaved(10*time.Millisecond, nil)
	r.SnapshotSaved(10*time.Millisecond, errors.New("disk full"))
	r.Totals(3, 1)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["tlist_store_mutations_total"])
	assert.True(t, names["tlist_snapshot_saves_total"])
	assert.True(t, names["tlist_tasks"])

	count, err := testutil.GatherAndCount(reg, "tlist_store_mutations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder(nil)
	r.Totals(5, 2)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tlist_tasks 5")
	assert.Contains(t, rec.Body.String(), "tlist_tasks_completed 2")
}
