package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder пишет события хранилища в Prometheus.
type Recorder struct {
	registry       *prom.Registry
	mutations      *prom.CounterVec
	saves          *prom.CounterVec
	saveDuration   prom.Histogram
	tasks          prom.Gauge
	tasksCompleted prom.Gauge
}

// NewRecorder регистрирует метрики в reg, при nil создаёт свой реестр.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		registry: reg,
		mutations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tlist",
			Name:      "store_mutations_total",
			Help:      "Store mutations by operation",
		}, []string{"operation"}),
		saves: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tlist",
			Name:      "snapshot_saves_total",
			Help:      "Snapshot save attempts by result",
		}, []string{"result"}),
		saveDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "tlist",
			Name:      "snapshot_save_duration_seconds",
			Help:      "Duration of snapshot saves",
			Buckets:   prom.DefBuckets,
		}),
		tasks: prom.NewGauge(prom.GaugeOpts{
			Namespace: "tlist",
			Name:      "tasks",
			Help:      "Number of tasks in the store",
		}),
		tasksCompleted: prom.NewGauge(prom.GaugeOpts{
			Namespace: "tlist",
			Name:      "tasks_completed",
			Help:      "Number of completed tasks in the store",
		}),
	}
	reg.MustRegister(r.mutations, r.saves, r.saveDuration, r.tasks, r.tasksCompleted)
	return r
}

func (r *Recorder) Mutation(op string) {
	r.mutations.WithLabelValues(op).Inc()
}

func (r *Recorder) SnapshotSaved(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.saves.WithLabelValues(result).Inc()
	r.saveDuration.Observe(d.Seconds())
}

func (r *Recorder) Totals(total, completed int) {
	r.tasks.Set(float64(total))
	r.tasksCompleted.Set(float64(completed))
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
