package pools

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dexScope/internal/model"
)

// Metrics is a prometheus-backed Observer. It takes a Registerer so callers
// control registration (default registry, custom, or none in tests).
type Metrics struct {
	StageIn            *prometheus.CounterVec
	StageOut           *prometheus.CounterVec
	EnrichmentOutcomes *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		StageIn: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "dexscope",
			Name:      "pipeline_stage_records_in_total",
			Help:      "Records entering each pipeline stage, labeled by dex and stage.",
		}, []string{"dex", "stage"}),
		StageOut: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "dexscope",
			Name:      "pipeline_stage_records_out_total",
			Help:      "Records surviving each pipeline stage, labeled by dex and stage.",
		}, []string{"dex", "stage"}),
		EnrichmentOutcomes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "dexscope",
			Name:      "enrichment_outcomes_total",
			Help:      "Per-pool enrichment outcomes, labeled by dex and outcome.",
		}, []string{"dex", "outcome"}),
	}
}

func (m *Metrics) Stage(dex model.DexTag, stage string, in, out int) {
	m.StageIn.WithLabelValues(string(dex), stage).Add(float64(in))
	m.StageOut.WithLabelValues(string(dex), stage).Add(float64(out))
}

func (m *Metrics) Enrichment(dex model.DexTag, outcome string) {
	m.EnrichmentOutcomes.WithLabelValues(string(dex), outcome).Inc()
}

var _ Observer = (*Metrics)(nil)
