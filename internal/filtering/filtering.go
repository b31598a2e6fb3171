package filtering

import (
	"fmt"

	"github.com/recrutai/recrutai-cli/internal/recrutai"

	"go.uber.org/zap"
)

// Filter is a single post-processing step applied to a server-produced
// ranking before it is rendered or exported. Filters only drop entries; the
// server's ordering is never changed.
type Filter interface {
	Name() string
	IsEnabled() bool
	Apply(r *recrutai.Rankings) (*recrutai.Rankings, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially, logging a summary line
// per step.
func Run(steps []Filter, r *recrutai.Rankings, logger *zap.Logger) (*recrutai.Rankings, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		r = next
	}

	return r, nil
}
