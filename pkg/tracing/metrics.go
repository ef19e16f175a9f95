package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// KeyOutcome tags drop measurements with inserted, moved or ignored
	KeyOutcome = tag.MustNewKey("outcome")
	// KeyBlockKind tags insertions with the inserted block kind
	KeyBlockKind = tag.MustNewKey("block_kind")
	// KeyResult tags renders with success or failure
	KeyResult = tag.MustNewKey("result")
)

var (
	MeasureDrops          = stats.Int64("canvas/editor/drops", "Drop events handled by editor sessions", stats.UnitDimensionless)
	MeasureActiveSessions = stats.Int64("canvas/editor/active_sessions", "Editor sessions held in memory", stats.UnitDimensionless)
	MeasureRenderLatency  = stats.Float64("canvas/render/latency", "Time to compile a document to HTML", stats.UnitMilliseconds)
)

// EditorViews are registered by RegisterViews
var EditorViews = []*view.View{
	{
		Name:        "canvas/editor/drops",
		Description: "Count of drop events by outcome and block kind",
		Measure:     MeasureDrops,
		TagKeys:     []tag.Key{KeyOutcome, KeyBlockKind},
		Aggregation: view.Count(),
	},
	{
		Name:        "canvas/editor/active_sessions",
		Description: "Editor sessions held in memory",
		Measure:     MeasureActiveSessions,
		Aggregation: view.LastValue(),
	},
	{
		Name:        "canvas/render/latency",
		Description: "Render latency distribution",
		Measure:     MeasureRenderLatency,
		TagKeys:     []tag.Key{KeyResult},
		Aggregation: view.Distribution(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500),
	},
}

// RecordDrop records a drop outcome
func RecordDrop(ctx context.Context, outcome, kind string) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyOutcome, outcome), tag.Upsert(KeyBlockKind, kind)},
		MeasureDrops.M(1),
	)
}

// RecordActiveSessions records the size of the session registry
func RecordActiveSessions(ctx context.Context, n int) {
	stats.Record(ctx, MeasureActiveSessions.M(int64(n)))
}

// RecordRender records how long a render took
func RecordRender(ctx context.Context, start time.Time, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	ms := float64(time.Since(start)) / float64(time.Millisecond)
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyResult, result)},
		MeasureRenderLatency.M(ms),
	)
}
