// Package dispatch routes task execution to the adapter that handles
// the task's kind.
package dispatch

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor as a composite: shell steps for
// build tasks, fetch plus extract for fetch tasks, lipo for merge tasks.
// Group tasks have no body.
type Executor struct {
	shell     ports.Executor
	fetcher   ports.SourceFetcher
	extractor ports.Extractor
	merger    ports.Merger
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates the composite executor.
func NewExecutor(shell ports.Executor, fetcher ports.SourceFetcher, extractor ports.Extractor, merger ports.Merger) *Executor {
	return &Executor{
		shell:     shell,
		fetcher:   fetcher,
		extractor: extractor,
		merger:    merger,
	}
}

// Execute runs the task body for its kind.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, env []string, out io.Writer) error {
	switch task.Kind {
	case domain.KindGroup:
		return nil
	case domain.KindFetch:
		return e.fetch(ctx, task)
	case domain.KindMerge:
		return e.merge(ctx, task)
	case domain.KindBuild:
		return e.shell.Execute(ctx, task, env, out)
	default:
		return zerr.With(zerr.New("unknown task kind"), "kind", string(task.Kind))
	}
}

func (e *Executor) fetch(ctx context.Context, task *domain.Task) error {
	if task.Source == nil {
		return zerr.With(zerr.New("fetch task has no source"), "task", task.Name.String())
	}
	archive, err := e.fetcher.Fetch(ctx, task.Source)
	if err != nil {
		return err
	}
	return e.extractor.Extract(archive, task.Source.ExtractTo.String())
}

// merge runs all of the task's artifact merges. Artifacts are
// independent files, so they merge in parallel.
func (e *Executor) merge(ctx context.Context, task *domain.Task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, spec := range task.Merges {
		g.Go(func() error {
			return e.merger.Merge(gctx, spec)
		})
	}
	return g.Wait()
}
