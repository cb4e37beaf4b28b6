// Package domain contains the core domain models for the release build graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the dependency graph of build tasks.
type Graph struct {
	tasks          map[InternedString]Task
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks:      make(map[InternedString]Task),
		dependents: make(map[InternedString][]InternedString),
	}
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same name already exists.
func (g *Graph) AddTask(t *Task) error {
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_name", t.Name.String())
	}
	g.tasks[t.Name] = *t
	return nil
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Get returns the task with the given name.
func (g *Graph) Get(name InternedString) (Task, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// Dependents returns the names of tasks that directly depend on the given task.
// Populated by Validate.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// Validate checks for dangling references and cycles using a depth-first
// topological sort, and builds the reverse-edge index. It must be called
// before Walk, Dependents, or Reachable.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	g.dependents = make(map[InternedString][]InternedString, len(g.tasks))

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := make(map[InternedString]int, len(g.tasks))
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		state[u] = visiting
		path = append(path, u)

		task, exists := g.tasks[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range task.Dependencies {
			g.dependents[dep] = append(g.dependents[dep], u)
			if state[dep] == visiting {
				return g.buildCycleError(path, dep)
			}
			if state[dep] == unvisited {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[u] = visited
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	// Sort the roots so disconnected components are visited in a stable
	// order and the resulting executionOrder is deterministic.
	names := make([]InternedString, 0, len(g.tasks))
	for name := range g.tasks {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, name := range names {
		if state[name] == unvisited {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := slices.Index(path, dep)
	for i := startIdx; i >= 0 && i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// Reachable returns the set of task names in the transitive dependency
// closure of the given targets, targets included. No targets means the
// whole graph. Unknown targets are an error. It assumes Validate() has
// been called.
func (g *Graph) Reachable(targets []string) (map[InternedString]bool, error) {
	reach := make(map[InternedString]bool)

	if len(targets) == 0 {
		for name := range g.tasks {
			reach[name] = true
		}
		return reach, nil
	}

	var visit func(u InternedString)
	visit = func(u InternedString) {
		if reach[u] {
			return
		}
		reach[u] = true
		for _, dep := range g.tasks[u].Dependencies {
			visit(dep)
		}
	}

	for _, target := range targets {
		name := NewInternedString(target)
		if _, ok := g.tasks[name]; !ok {
			return nil, zerr.With(ErrTaskNotFound, "target", target)
		}
		visit(name)
	}

	return reach, nil
}
