package ports

import (
	"context"
	"io"

	"go.trai.ch/fab/internal/core/domain"
)

// Executor defines the interface for executing a task's body.
//
// The env parameter contains environment variables in "KEY=VALUE" format,
// typically provided by an EnvironmentFactory for the task's architecture.
// Sub-step output is written to out so the scheduler can attribute it to
// the task's telemetry span instead of interleaving raw streams.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given task. It returns an error if any sub-step
	// fails; on error the task must not be stamped complete.
	Execute(ctx context.Context, task *domain.Task, env []string, out io.Writer) error
}
