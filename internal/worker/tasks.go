package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"valuebet/pkg/application/modules"
)

// Task type names, shared by the scheduler and the worker mux.
const (
	TaskScan   = "cycle:scan"
	TaskDrain  = "cycle:drain"
	TaskSweep  = "cycle:sweep"
	TaskSettle = "cycle:settle"
)

// Handlers binds each cycle to its task pattern for the asynq server.
func (e *Engine) Handlers() []modules.AsynqHandler {
	return []modules.AsynqHandler{
		{Pattern: TaskScan, Handle: e.instrumented("scan", e.ScanCycle)},
		{Pattern: TaskDrain, Handle: e.instrumented("drain", e.DrainCycle)},
		{Pattern: TaskSweep, Handle: e.instrumented("sweep", e.SweepCycle)},
		{Pattern: TaskSettle, Handle: e.instrumented("settle", e.SettleCycle)},
	}
}

func (e *Engine) instrumented(cycle string, run func(context.Context) error) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, _ *asynq.Task) error {
		started := time.Now()

		err := run(ctx)

		cycleDuration.WithLabelValues(cycle).Observe(time.Since(started).Seconds())

		if err != nil {
			cycleRuns.WithLabelValues(cycle, "error").Inc()
			return fmt.Errorf("%s cycle: %w", cycle, err)
		}

		cycleRuns.WithLabelValues(cycle, "ok").Inc()

		return nil
	}
}
