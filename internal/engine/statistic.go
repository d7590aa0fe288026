package engine

import (
	"time"

	"github.com/joeycumines/go-ppsmc/internal/ppsmclog"
)

// Statistic accumulates per-phase timings, reported at the end of Check
// regardless of verdict (spec.md section 7, "per-phase timing is always
// reported... including on the verified/falsified boundary"). Field names
// mirror ppsmc/src/property_driven/statistic.rs; the post/pre image and
// propagate fields are only populated by BarrierEngine (the `--op` path) --
// the message-driven default only has coarse phase granularity to report.
type Statistic struct {
	PostReachableTime time.Duration
	PostImageTime     time.Duration
	PostPropagateTime time.Duration
	FairCycleTime     time.Duration
	PreImageTime      time.Duration
	PrePropagateTime  time.Duration
}

// Log emits every accumulated duration as one structured Info event,
// through the package-level logger (spec.md's per-phase timing report).
func (s *Statistic) Log() {
	ppsmclog.Logger().Info().
		Int64(`post_reachable_ms`, s.PostReachableTime.Milliseconds()).
		Int64(`post_image_ms`, s.PostImageTime.Milliseconds()).
		Int64(`post_propagate_ms`, s.PostPropagateTime.Milliseconds()).
		Int64(`fair_cycle_ms`, s.FairCycleTime.Milliseconds()).
		Int64(`pre_image_ms`, s.PreImageTime.Milliseconds()).
		Int64(`pre_propagate_ms`, s.PrePropagateTime.Milliseconds()).
		Log(`check statistics`)
}
