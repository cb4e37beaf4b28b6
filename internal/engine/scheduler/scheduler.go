// Package scheduler implements the task execution scheduler.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusCached indicates the task body was skipped because its
	// completion marker is still fresh.
	StatusCached TaskStatus = "Cached"
)

// Scheduler runs the reachable subset of a task graph with bounded
// parallelism and strict dependency ordering. A task never starts before
// all its predecessors have stamped completion; a failed task halts its
// dependents while independent branches run to their own completion.
type Scheduler struct {
	executor   ports.Executor
	stamper    ports.StampTracker
	envFactory ports.EnvironmentFactory
	tracer     ports.Tracer

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	executor ports.Executor,
	stamper ports.StampTracker,
	envFactory ports.EnvironmentFactory,
	tracer ports.Tracer,
) *Scheduler {
	return &Scheduler{
		executor:   executor,
		stamper:    stamper,
		envFactory: envFactory,
		tracer:     tracer,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

func (s *Scheduler) getStatus(name domain.InternedString) TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[name]
}

// Run executes the tasks reachable from targets with the specified
// parallelism. The graph must already be validated. When force is set,
// stamp freshness is ignored and every reachable task body runs.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, targets []string, parallelism int, force bool) error {
	state, err := s.newRunState(ctx, graph, targets, parallelism, force)
	if err != nil {
		return err
	}

	planned := make([]string, 0, len(state.tasks))
	for task := range graph.Walk() {
		if state.reach[task.Name] {
			planned = append(planned, task.Name.String())
		}
	}
	s.tracer.EmitPlan(ctx, planned)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

type result struct {
	task   domain.InternedString
	err    error
	cached bool
}

type schedulerRunState struct {
	graph       *domain.Graph
	reach       map[domain.InternedString]bool
	inDegree    map[domain.InternedString]int
	tasks       map[domain.InternedString]domain.Task
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	parallelism int
	force       bool
	s           *Scheduler
}

func (s *Scheduler) newRunState(ctx context.Context, graph *domain.Graph, targets []string, parallelism int, force bool) (*schedulerRunState, error) {
	reach, err := graph.Reachable(targets)
	if err != nil {
		return nil, err
	}

	inDegree := make(map[domain.InternedString]int, len(reach))
	tasks := make(map[domain.InternedString]domain.Task, len(reach))

	for task := range graph.Walk() {
		if !reach[task.Name] {
			continue
		}
		tasks[task.Name] = task
		inDegree[task.Name] = len(task.Dependencies)
		s.updateStatus(task.Name, StatusPending)
	}

	var ready []domain.InternedString
	for task := range graph.Walk() {
		if reach[task.Name] && inDegree[task.Name] == 0 {
			ready = append(ready, task.Name)
		}
	}

	if parallelism < 1 {
		parallelism = 1
	}

	return &schedulerRunState{
		graph:       graph,
		reach:       reach,
		inDegree:    inDegree,
		tasks:       tasks,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		parallelism: parallelism,
		force:       force,
		s:           s,
	}, nil
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(taskName, StatusRunning)

		go func(t domain.Task) {
			cached, err := state.executeTask(state.ctx, &t)
			state.resultsCh <- result{task: t.Name, err: err, cached: cached}
		}(state.tasks[taskName])
	}
}

// executeTask runs one task body behind the stamp gate. Group tasks have
// no body and complete immediately. The returned bool reports a stamp
// hit (body skipped).
func (state *schedulerRunState) executeTask(ctx context.Context, task *domain.Task) (bool, error) {
	if task.Kind == domain.KindGroup {
		return false, nil
	}

	preds := state.predecessors(task)

	if !state.force {
		fresh, err := state.s.stamper.Fresh(task, preds)
		if err != nil {
			return false, err
		}
		if fresh {
			return true, nil
		}
	}

	env := state.s.envFactory.Environment(task.Arch)

	spanCtx, span := state.s.tracer.Start(ctx, task.Name.String())
	defer span.End()

	if err := state.s.executor.Execute(spanCtx, task, env, span); err != nil {
		span.RecordError(err)
		return false, err
	}

	if err := state.s.stamper.Stamp(task); err != nil {
		span.RecordError(err)
		return false, err
	}
	return false, nil
}

// predecessors returns the stamped tasks the given task depends on.
// Group tasks carry no stamp, so they are looked through: a dependency
// on a group stands for a dependency on everything the group gathers,
// and a rebuild below the group must invalidate tasks above it.
func (state *schedulerRunState) predecessors(task *domain.Task) []domain.Task {
	preds := make([]domain.Task, 0, len(task.Dependencies))
	seen := make(map[domain.InternedString]bool)

	var expand func(deps []domain.InternedString)
	expand = func(deps []domain.InternedString) {
		for _, dep := range deps {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			t, ok := state.graph.Get(dep)
			if !ok {
				continue
			}
			if t.Kind == domain.KindGroup {
				expand(t.Dependencies)
				continue
			}
			preds = append(preds, t)
		}
	}
	expand(task.Dependencies)
	return preds
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--
	if res.err != nil {
		wrappedErr := zerr.With(zerr.Wrap(res.err, "task execution failed"), "task", res.task.String())
		state.errs = errors.Join(state.errs, wrappedErr)
		state.s.updateStatus(res.task, StatusFailed)
		return
	}

	if res.cached {
		state.s.updateStatus(res.task, StatusCached)
	} else {
		state.s.updateStatus(res.task, StatusCompleted)
	}

	for _, dep := range state.graph.Dependents(res.task) {
		if !state.reach[dep] {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
