// Package app implements the application layer for fab.
package app

import (
	"context"
	"errors"
	"runtime"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/fab/internal/engine/generator"
	"go.trai.ch/fab/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App ties the manifest, the generated task graph, and the scheduler
// together.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	envFactory   ports.EnvironmentFactory
	stamper      ports.StampTracker
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	envFactory ports.EnvironmentFactory,
	stamper ports.StampTracker,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		envFactory:   envFactory,
		stamper:      stamper,
		logger:       logger,
	}
}

// Run loads the manifest, generates the task graph, and executes the
// requested targets. With no targets the full release is built.
func (a *App) Run(ctx context.Context, targetNames []string, jobs int, force bool) error {
	graph, _, err := a.load(jobs)
	if err != nil {
		return err
	}

	if len(targetNames) == 0 {
		targetNames = []string{generator.TargetRelease}
	}

	if err := a.scheduler.Run(ctx, graph, targetNames, runtime.NumCPU(), force); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

// Plan loads the manifest and returns the generated task names in
// execution order, without running anything.
func (a *App) Plan(jobs int) ([]string, error) {
	graph, _, err := a.load(jobs)
	if err != nil {
		return nil, err
	}

	var names []string
	for task := range graph.Walk() {
		names = append(names, task.Name.String())
	}
	return names, nil
}

// Clean removes all completion state and build trees. The source
// archive cache survives.
func (a *App) Clean() error {
	if err := a.stamper.Clean(); err != nil {
		return zerr.Wrap(err, "clean failed")
	}
	a.logger.Info("workspace cleaned")
	return nil
}

func (a *App) load(jobs int) (*domain.Graph, *domain.Manifest, error) {
	manifest, err := a.configLoader.Load(".")
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load manifest")
	}
	if jobs > 0 {
		manifest.Jobs = jobs
	}

	a.envFactory.Configure(manifest.Toolchain)

	graph, err := generator.New(domain.NewLayout(manifest.Root)).Generate(manifest)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to generate task graph")
	}
	return graph, manifest, nil
}
