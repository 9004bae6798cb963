package pools

import "dexScope/internal/model"

// Pipeline stage names reported to the Observer.
const (
	StageList           = "list"
	StageCompleteness   = "completeness"
	StageMembership     = "membership"
	StageEnrich         = "enrich"
	StageMembershipPost = "membership_post"
)

// Enrichment outcome labels.
const (
	OutcomeMerged            = "merged"
	OutcomeKeptOriginal      = "kept_original"
	OutcomeDroppedEmpty      = "dropped_empty"
	OutcomeKeptAfterError    = "kept_after_error"
	OutcomeDroppedAfterError = "dropped_after_error"
)

// Observer receives pipeline counters: records in and out of each filter
// stage and per-outcome enrichment counts. Implementations are injected;
// there is no process-wide sink.
type Observer interface {
	Stage(dex model.DexTag, stage string, in, out int)
	Enrichment(dex model.DexTag, outcome string)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Stage(model.DexTag, string, int, int) {}
func (NopObserver) Enrichment(model.DexTag, string)      {}
