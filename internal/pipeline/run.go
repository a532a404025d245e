package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/extkit/extbuild/internal/logging"
)

// Run executes the stages of p in order. Stage n+1 starts only after stage
// n succeeded; the first failure aborts the run and is returned as a
// *StageError. Cancellation is observed between stages.
func Run(ctx context.Context, p Pipeline, logger *log.Logger) error {
	logger = logging.OrDiscard(logger)
	start := time.Now()

	for i, s := range p.Stages {
		if err := ctx.Err(); err != nil {
			return &StageError{Pipeline: p.Kind, Stage: s.Name, Err: err}
		}

		logger.Info("stage", "name", s.Name, "step", i+1, "of", len(p.Stages))
		stageStart := time.Now()
		if err := s.Run(ctx); err != nil {
			logger.Error("stage failed", "name", s.Name, "elapsed", time.Since(stageStart).Round(time.Millisecond))
			return &StageError{Pipeline: p.Kind, Stage: s.Name, Err: err}
		}
		logger.Debug("stage done", "name", s.Name, "elapsed", time.Since(stageStart).Round(time.Millisecond))
	}

	logger.Info("pipeline finished", "pipeline", string(p.Kind), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
