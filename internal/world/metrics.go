package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics содержит счётчики Prometheus движка мира.
//
// Метрики:
// * voxel_engine_chunks_loaded — gauge, резидентные чанки
// * voxel_engine_chunks_generated_total — counter
// * voxel_engine_chunks_evicted_total — counter
// * voxel_engine_columns_rebuilt_total — counter
// * voxel_engine_edits_applied_total / edits_dropped_total — counter
// * voxel_engine_mesh_build_duration_seconds — histogram
// * voxel_engine_quads_emitted_total — counter
type EngineMetrics struct {
	ChunksLoaded     prometheus.Gauge
	ChunksGenerated  prometheus.Counter
	ChunksEvicted    prometheus.Counter
	ColumnsRebuilt   prometheus.Counter
	EditsApplied     prometheus.Counter
	EditsDropped     prometheus.Counter
	MeshBuildSeconds prometheus.Histogram
	QuadsEmitted     prometheus.Counter
}

// NewEngineMetrics создаёт метрики и регистрирует их в указанном
// регистре. Для дефолтного регистра передайте prometheus.DefaultRegisterer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	const ns = "voxel_engine"

	m := &EngineMetrics{
		ChunksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "chunks_loaded",
			Help:      "Текущее количество резидентных чанков.",
		}),
		ChunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "chunks_generated_total",
			Help:      "Общее число сгенерированных чанков.",
		}),
		ChunksEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "chunks_evicted_total",
			Help:      "Общее число выгруженных чанков.",
		}),
		ColumnsRebuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "columns_rebuilt_total",
			Help:      "Общее число перестроений мешей колонн.",
		}),
		EditsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "edits_applied_total",
			Help:      "Общее число применённых правок вокселей.",
		}),
		EditsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "edits_dropped_total",
			Help:      "Общее число правок, отброшенных из-за нерезидентного чанка.",
		}),
		MeshBuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "mesh_build_duration_seconds",
			Help:      "Длительность перестроения меша колонны.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		QuadsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "quads_emitted_total",
			Help:      "Общее число излучённых четырёхугольников.",
		}),
	}

	reg.MustRegister(
		m.ChunksLoaded,
		m.ChunksGenerated,
		m.ChunksEvicted,
		m.ColumnsRebuilt,
		m.EditsApplied,
		m.EditsDropped,
		m.MeshBuildSeconds,
		m.QuadsEmitted,
	)
	return m
}
