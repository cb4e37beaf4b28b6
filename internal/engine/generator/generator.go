// Package generator synthesizes the release build graph from a manifest.
//
// For every template-buildable dependency it emits one build task per
// declared architecture, a merge task combining the per-architecture
// artifacts, and a bodiless aggregation task; dependencies built once use
// the primary architecture only. The program gets the same treatment on
// top of the full dependency set. Rule generation is explicit data
// iteration, one descriptor record per component, not textual expansion.
package generator

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/zerr"
)

// Well-known aggregate target names.
const (
	// TargetDeps depends on every dependency's aggregation task.
	TargetDeps = "deps"
	// TargetRelease depends on the merged, verified program binary.
	TargetRelease = "release"
)

// DepTarget returns the aggregation target name for a dependency.
func DepTarget(name string) string {
	return "dep:" + name
}

// Generator builds task graphs from manifests.
type Generator struct {
	layout domain.Layout
}

// New creates a Generator deriving paths from the given layout.
func New(layout domain.Layout) *Generator {
	return &Generator{layout: layout}
}

// Generate produces the full task graph for the manifest. It either
// fully succeeds with a validated graph or fails fast; no partial graph
// is ever returned.
func (g *Generator) Generate(m *domain.Manifest) (*domain.Graph, error) {
	if err := m.Validate(); err != nil {
		return nil, zerr.Wrap(err, "invalid manifest")
	}

	graph := domain.NewGraph()

	depTargets := make([]domain.InternedString, 0, len(m.Dependencies))
	for i := range m.Dependencies {
		dep := &m.Dependencies[i]
		aggregate, err := g.addDependency(graph, m, dep)
		if err != nil {
			return nil, err
		}
		depTargets = append(depTargets, aggregate)
	}

	if err := graph.AddTask(&domain.Task{
		Name:         domain.NewInternedString(TargetDeps),
		Kind:         domain.KindGroup,
		Dependencies: depTargets,
	}); err != nil {
		return nil, err
	}

	if err := g.addProgram(graph, m); err != nil {
		return nil, err
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	// Walk requires a validated graph.
	if err := g.validateOutputs(graph); err != nil {
		return nil, err
	}
	return graph, nil
}

// addDependency emits the fetch, per-architecture build, merge, and
// aggregation tasks for one dependency. It returns the aggregation task
// name other tasks depend on.
func (g *Generator) addDependency(graph *domain.Graph, m *domain.Manifest, dep *domain.Dependency) (domain.InternedString, error) {
	name := dep.Name.String()
	srcDir := g.layout.SourceDir(name, dep.Version.String())

	fetchName, err := g.addFetch(graph, name, dep.Source, srcDir)
	if err != nil {
		return domain.InternedString{}, err
	}

	archs := m.Archs
	if !dep.PerArch {
		archs = []domain.Arch{domain.PrimaryArch(m.Archs)}
	}

	buildNames := make([]domain.InternedString, 0, len(archs))
	for _, arch := range archs {
		prefix := g.layout.PrefixDir(arch)
		if !dep.PerArch {
			// Built once; installs straight into the shared universal
			// prefix, no merge step.
			prefix = g.layout.UniversalPrefix()
		}

		task := g.buildTask(buildTaskParams{
			taskName:     fmt.Sprintf("build:%s:%s", name, arch),
			component:    dep.Name,
			arch:         arch,
			srcDir:       srcDir,
			workDir:      g.layout.WorkDir(name, arch),
			prefix:       prefix,
			flags:        dep.ConfigureFlags,
			env:          dep.Env,
			skipSelfTest: dep.SkipSelfTest,
			artifacts:    dep.Artifacts,
			jobs:         m.Jobs,
			deps:         []domain.InternedString{fetchName},
		})
		if err := graph.AddTask(task); err != nil {
			return domain.InternedString{}, err
		}
		buildNames = append(buildNames, task.Name)
	}

	aggregateDeps := buildNames
	if dep.PerArch {
		mergeName, err := g.addMerge(graph, mergeTaskParams{
			taskName:  "merge:" + name,
			component: dep.Name,
			archs:     m.Archs,
			artifacts: dep.Artifacts,
			deps:      buildNames,
		})
		if err != nil {
			return domain.InternedString{}, err
		}
		aggregateDeps = append(buildNames, mergeName)
	}

	aggregate := domain.NewInternedString(DepTarget(name))
	if err := graph.AddTask(&domain.Task{
		Name:         aggregate,
		Kind:         domain.KindGroup,
		Component:    dep.Name,
		Dependencies: aggregateDeps,
	}); err != nil {
		return domain.InternedString{}, err
	}
	return aggregate, nil
}

// addProgram emits the program's fetch, per-architecture builds, the
// PIE-verified merge, and the release aggregation task.
func (g *Generator) addProgram(graph *domain.Graph, m *domain.Manifest) error {
	prog := &m.Program
	name := prog.Name.String()
	srcDir := g.layout.SourceDir(name, prog.Version.String())

	fetchName, err := g.addFetch(graph, name, prog.Source, srcDir)
	if err != nil {
		return err
	}

	buildNames := make([]domain.InternedString, 0, len(m.Archs))
	for _, arch := range m.Archs {
		task := g.buildTask(buildTaskParams{
			taskName:     fmt.Sprintf("build:%s:%s", name, arch),
			component:    prog.Name,
			arch:         arch,
			srcDir:       srcDir,
			workDir:      g.layout.WorkDir(name, arch),
			prefix:       g.layout.PrefixDir(arch),
			flags:        prog.ConfigureFlags,
			env:          prog.Env,
			skipSelfTest: prog.SkipSelfTest,
			artifacts:    []string{prog.Binary},
			jobs:         m.Jobs,
			deps:         []domain.InternedString{fetchName, domain.NewInternedString(TargetDeps)},
		})
		if err := graph.AddTask(task); err != nil {
			return err
		}
		buildNames = append(buildNames, task.Name)
	}

	mergeName, err := g.addMerge(graph, mergeTaskParams{
		taskName:   "merge:" + name,
		component:  prog.Name,
		archs:      m.Archs,
		artifacts:  []string{prog.Binary},
		deps:       buildNames,
		requirePIE: true,
	})
	if err != nil {
		return err
	}

	return graph.AddTask(&domain.Task{
		Name:         domain.NewInternedString(TargetRelease),
		Kind:         domain.KindGroup,
		Component:    prog.Name,
		Dependencies: []domain.InternedString{mergeName},
	})
}

func (g *Generator) addFetch(graph *domain.Graph, name string, src domain.Source, srcDir string) (domain.InternedString, error) {
	taskName := "fetch:" + name
	task := &domain.Task{
		Name:      domain.NewInternedString(taskName),
		Kind:      domain.KindFetch,
		Component: domain.NewInternedString(name),
		Outputs:   []domain.InternedString{domain.NewInternedString(srcDir)},
		StampPath: domain.NewInternedString(g.layout.StampPath(taskName)),
		Source: &domain.Source{
			URL:       src.URL,
			Checksum:  src.Checksum,
			ExtractTo: domain.NewInternedString(srcDir),
		},
	}
	if err := graph.AddTask(task); err != nil {
		return domain.InternedString{}, err
	}
	return task.Name, nil
}

type buildTaskParams struct {
	taskName     string
	component    domain.InternedString
	arch         domain.Arch
	srcDir       string
	workDir      string
	prefix       string
	flags        []string
	env          map[string]string
	skipSelfTest bool
	artifacts    []string
	jobs         int
	deps         []domain.InternedString
}

// buildTask synthesizes one per-architecture build: the component's own
// configure step with the shared prefix and its specific flags, its
// compile step bounded by the jobs factor, its optional self-test, and
// its install step. The architecture itself is baked into compiler flags
// by the environment factory at execution time.
func (g *Generator) buildTask(p buildTaskParams) *domain.Task {
	configure := make([]string, 0, 2+len(p.flags))
	configure = append(configure, filepath.Join(p.srcDir, "configure"), "--prefix="+p.prefix)
	configure = append(configure, p.flags...)

	commands := [][]string{
		configure,
		{"make", fmt.Sprintf("-j%d", max(p.jobs, 1))},
	}
	if !p.skipSelfTest {
		commands = append(commands, []string{"make", "check"})
	}
	commands = append(commands, []string{"make", "install"})

	outputs := make([]domain.InternedString, 0, len(p.artifacts))
	for _, a := range p.artifacts {
		outputs = append(outputs, domain.NewInternedString(filepath.Join(p.prefix, a)))
	}

	return &domain.Task{
		Name:         domain.NewInternedString(p.taskName),
		Kind:         domain.KindBuild,
		Component:    p.component,
		Arch:         p.arch,
		Commands:     commands,
		WorkingDir:   domain.NewInternedString(p.workDir),
		Env:          p.env,
		Inputs:       []domain.InternedString{domain.NewInternedString(p.srcDir)},
		Outputs:      outputs,
		Dependencies: p.deps,
		StampPath:    domain.NewInternedString(g.layout.StampPath(p.taskName)),
	}
}

type mergeTaskParams struct {
	taskName   string
	component  domain.InternedString
	archs      []domain.Arch
	artifacts  []string
	deps       []domain.InternedString
	requirePIE bool
}

// addMerge emits one merge task covering all of a component's artifacts.
// Each artifact gets a MergeSpec listing one input per declared
// architecture; the merge adapter fails loudly if any is missing.
func (g *Generator) addMerge(graph *domain.Graph, p mergeTaskParams) (domain.InternedString, error) {
	merges := make([]domain.MergeSpec, 0, len(p.artifacts))
	inputs := make([]domain.InternedString, 0, len(p.artifacts)*len(p.archs))
	outputs := make([]domain.InternedString, 0, len(p.artifacts))

	for _, artifact := range p.artifacts {
		spec := domain.MergeSpec{
			Artifact:   artifact,
			Inputs:     make(map[domain.Arch]string, len(p.archs)),
			Output:     filepath.Join(g.layout.UniversalPrefix(), artifact),
			RequirePIE: p.requirePIE,
		}
		for _, arch := range p.archs {
			in := filepath.Join(g.layout.PrefixDir(arch), artifact)
			spec.Inputs[arch] = in
			inputs = append(inputs, domain.NewInternedString(in))
		}
		merges = append(merges, spec)
		outputs = append(outputs, domain.NewInternedString(spec.Output))
	}

	task := &domain.Task{
		Name:         domain.NewInternedString(p.taskName),
		Kind:         domain.KindMerge,
		Component:    p.component,
		Inputs:       inputs,
		Outputs:      outputs,
		Dependencies: p.deps,
		StampPath:    domain.NewInternedString(g.layout.StampPath(p.taskName)),
		Merges:       merges,
	}
	if err := graph.AddTask(task); err != nil {
		return domain.InternedString{}, err
	}
	return task.Name, nil
}

// validateOutputs rejects graphs where two tasks declare the same output
// path. Per-architecture prefixes keep concurrent builds disjoint; this
// turns an accidental overlap into a configuration error instead of a
// latent race on the shared prefix.
func (g *Generator) validateOutputs(graph *domain.Graph) error {
	owner := make(map[domain.InternedString]domain.InternedString)
	for task := range graph.Walk() {
		for _, out := range task.Outputs {
			if prev, ok := owner[out]; ok && prev != task.Name {
				return zerr.With(zerr.With(domain.ErrOverlappingOutputs,
					"path", out.String()),
					"tasks", prev.String()+", "+task.Name.String())
			}
			owner[out] = task.Name
		}
	}
	return nil
}
