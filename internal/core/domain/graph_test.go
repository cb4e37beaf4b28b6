package domain_test

import (
	"testing"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestGraph_AddTask(t *testing.T) {
	g := domain.NewGraph()
	task := domain.Task{Name: domain.NewInternedString("task1")}

	if err := g.AddTask(&task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.AddTask(&task); err == nil {
		t.Error("expected error when adding duplicate task, got nil")
	} else {
		zErr, ok := err.(*zerr.Error)
		if !ok {
			t.Errorf("expected *zerr.Error, got %T", err)
		}
		meta := zErr.Metadata()
		if taskName, ok := meta["task_name"].(string); !ok || taskName != "task1" {
			t.Errorf("expected metadata task_name=task1, got %v", meta["task_name"])
		}
	}
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	taskA := domain.Task{
		Name:         domain.NewInternedString("A"),
		Dependencies: []domain.InternedString{domain.NewInternedString("B")},
	}
	taskB := domain.Task{
		Name:         domain.NewInternedString("B"),
		Dependencies: []domain.InternedString{domain.NewInternedString("A")},
	}

	if err := g.AddTask(&taskA); err != nil {
		t.Fatalf("failed to add task A: %v", err)
	}
	if err := g.AddTask(&taskB); err != nil {
		t.Fatalf("failed to add task B: %v", err)
	}

	err := g.Validate()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if cycle, ok := meta["cycle"].(string); !ok || cycle == "" {
		t.Errorf("expected metadata cycle to be non-empty string, got %v", meta["cycle"])
	}
}

func TestGraph_Validate_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	task := domain.Task{
		Name:         domain.NewInternedString("A"),
		Dependencies: []domain.InternedString{domain.NewInternedString("ghost")},
	}
	if err := g.AddTask(&task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	if err := g.Validate(); err == nil {
		t.Fatal("expected error for missing dependency, got nil")
	}
}

func TestGraph_Walk_Order(t *testing.T) {
	g := domain.NewGraph()
	// A -> B -> C. Execution order: C, B, A.
	taskA := domain.Task{
		Name:         domain.NewInternedString("A"),
		Dependencies: []domain.InternedString{domain.NewInternedString("B")},
	}
	taskB := domain.Task{
		Name:         domain.NewInternedString("B"),
		Dependencies: []domain.InternedString{domain.NewInternedString("C")},
	}
	taskC := domain.Task{Name: domain.NewInternedString("C")}

	for _, task := range []*domain.Task{&taskA, &taskB, &taskC} {
		if err := g.AddTask(task); err != nil {
			t.Fatalf("failed to add %s: %v", task.Name, err)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	var order []string
	for task := range g.Walk() {
		order = append(order, task.Name.String())
	}

	want := []string{"C", "B", "A"}
	if len(order) != len(want) {
		t.Fatalf("expected %d tasks, got %d: %v", len(want), len(order), order)
	}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("position %d: expected %s, got %s", i, name, order[i])
		}
	}
}

func TestGraph_Dependents(t *testing.T) {
	g := domain.NewGraph()
	taskA := domain.Task{
		Name:         domain.NewInternedString("A"),
		Dependencies: []domain.InternedString{domain.NewInternedString("C")},
	}
	taskB := domain.Task{
		Name:         domain.NewInternedString("B"),
		Dependencies: []domain.InternedString{domain.NewInternedString("C")},
	}
	taskC := domain.Task{Name: domain.NewInternedString("C")}

	for _, task := range []*domain.Task{&taskA, &taskB, &taskC} {
		if err := g.AddTask(task); err != nil {
			t.Fatalf("failed to add %s: %v", task.Name, err)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	deps := g.Dependents(domain.NewInternedString("C"))
	if len(deps) != 2 {
		t.Fatalf("expected 2 dependents of C, got %d: %v", len(deps), deps)
	}
}

func TestGraph_Reachable(t *testing.T) {
	g := domain.NewGraph()
	// A -> B -> C, D standalone.
	taskA := domain.Task{
		Name:         domain.NewInternedString("A"),
		Dependencies: []domain.InternedString{domain.NewInternedString("B")},
	}
	taskB := domain.Task{
		Name:         domain.NewInternedString("B"),
		Dependencies: []domain.InternedString{domain.NewInternedString("C")},
	}
	taskC := domain.Task{Name: domain.NewInternedString("C")}
	taskD := domain.Task{Name: domain.NewInternedString("D")}

	for _, task := range []*domain.Task{&taskA, &taskB, &taskC, &taskD} {
		if err := g.AddTask(task); err != nil {
			t.Fatalf("failed to add %s: %v", task.Name, err)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	reach, err := g.Reachable([]string{"B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reach) != 2 {
		t.Errorf("expected closure of 2 tasks, got %d", len(reach))
	}
	if !reach[domain.NewInternedString("B")] || !reach[domain.NewInternedString("C")] {
		t.Errorf("expected B and C to be reachable, got %v", reach)
	}
	if reach[domain.NewInternedString("D")] {
		t.Error("D must not be reachable from B")
	}

	all, err := g.Reachable(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != g.TaskCount() {
		t.Errorf("no targets should mean the whole graph, got %d of %d", len(all), g.TaskCount())
	}

	if _, err := g.Reachable([]string{"nope"}); err == nil {
		t.Error("expected error for unknown target, got nil")
	}
}
