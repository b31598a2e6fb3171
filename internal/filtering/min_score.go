package filtering

import (
	"fmt"

	"github.com/recrutai/recrutai-cli/internal/recrutai"
)

type minScoreFilter struct {
	threshold float64
}

// NewMinScore creates a filter that drops candidates scoring below the
// threshold. A non-positive threshold disables the filter.
func NewMinScore(threshold float64) Filter {
	return &minScoreFilter{threshold: threshold}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) IsEnabled() bool { return f.threshold > 0 }

func (f *minScoreFilter) Apply(r *recrutai.Rankings) (*recrutai.Rankings, Step, error) {
	if f.threshold > 100 {
		return nil, Step{}, fmt.Errorf("minimum score %.1f is above the 0-100 scale", f.threshold)
	}

	initial := r.Len()
	kept := r.Keep(func(rc *recrutai.RankedCV) bool {
		return rc.Score >= f.threshold
	})

	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}, nil
}
