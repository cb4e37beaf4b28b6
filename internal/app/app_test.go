package app_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/fab/internal/adapters/telemetry"
	"go.trai.ch/fab/internal/app"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports/mocks"
	"go.trai.ch/fab/internal/engine/scheduler"
)

type fixture struct {
	loader     *mocks.MockConfigLoader
	executor   *mocks.MockExecutor
	stamper    *mocks.MockStampTracker
	envFactory *mocks.MockEnvironmentFactory
	logger     *mocks.MockLogger
	app        *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:     mocks.NewMockConfigLoader(ctrl),
		executor:   mocks.NewMockExecutor(ctrl),
		stamper:    mocks.NewMockStampTracker(ctrl),
		envFactory: mocks.NewMockEnvironmentFactory(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
	}
	sched := scheduler.NewScheduler(f.executor, f.stamper, f.envFactory, telemetry.NewNoOpTracer())
	f.app = app.New(f.loader, sched, f.envFactory, f.stamper, f.logger)
	return f
}

func testManifest() *domain.Manifest {
	return &domain.Manifest{
		Root:  "/proj",
		Jobs:  8,
		Archs: []domain.Arch{"x86_64", "arm64"},
		Dependencies: []domain.Dependency{
			{
				Name:    domain.NewInternedString("zlib"),
				Version: domain.NewInternedString("1.3.1"),
				Source: domain.Source{
					URL:      domain.NewInternedString("https://example.test/zlib-1.3.1.tar.gz"),
					Checksum: domain.NewInternedString("aa"),
				},
				PerArch:   true,
				Artifacts: []string{"lib/libz.a"},
			},
		},
		Program: domain.Program{
			Name:    domain.NewInternedString("getit"),
			Version: domain.NewInternedString("2.0"),
			Source: domain.Source{
				URL:      domain.NewInternedString("https://example.test/getit-2.0.tar.gz"),
				Checksum: domain.NewInternedString("cc"),
			},
			Binary: "bin/getit",
		},
	}
}

func TestApp_Run_BuildsRelease(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testManifest(), nil)
	f.envFactory.EXPECT().Configure(gomock.Any())
	f.envFactory.EXPECT().Environment(gomock.Any()).Return(nil).AnyTimes()
	f.stamper.EXPECT().Fresh(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	f.stamper.EXPECT().Stamp(gomock.Any()).Return(nil).AnyTimes()

	// zlib: fetch + 2 builds + merge; getit: fetch + 2 builds + merge.
	// Groups carry no body.
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(8)

	require.NoError(t, f.app.Run(context.Background(), nil, 0, false))
}

func TestApp_Run_TargetSubset(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testManifest(), nil)
	f.envFactory.EXPECT().Configure(gomock.Any())
	f.envFactory.EXPECT().Environment(gomock.Any()).Return(nil).AnyTimes()
	f.stamper.EXPECT().Fresh(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	f.stamper.EXPECT().Stamp(gomock.Any()).Return(nil).AnyTimes()

	var mu sync.Mutex
	var executed []string
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *domain.Task, _ []string, _ io.Writer) error {
			mu.Lock()
			defer mu.Unlock()
			executed = append(executed, task.Name.String())
			return nil
		}).
		AnyTimes()

	require.NoError(t, f.app.Run(context.Background(), []string{"dep:zlib"}, 0, false))

	assert.ElementsMatch(t, []string{
		"fetch:zlib", "build:zlib:x86_64", "build:zlib:arm64", "merge:zlib",
	}, executed)
}

func TestApp_Run_JobsOverride(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testManifest(), nil)
	f.envFactory.EXPECT().Configure(gomock.Any())
	f.envFactory.EXPECT().Environment(gomock.Any()).Return(nil).AnyTimes()
	f.stamper.EXPECT().Fresh(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	f.stamper.EXPECT().Stamp(gomock.Any()).Return(nil).AnyTimes()

	var sawJobsFlag atomic.Bool
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *domain.Task, _ []string, _ io.Writer) error {
			for _, step := range task.Commands {
				for _, arg := range step {
					if strings.HasPrefix(arg, "-j3") {
						sawJobsFlag.Store(true)
					}
				}
			}
			return nil
		}).
		AnyTimes()

	require.NoError(t, f.app.Run(context.Background(), nil, 3, false))
	assert.True(t, sawJobsFlag.Load(), "build commands must honor the jobs override")
}

func TestApp_Run_ExecutionFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testManifest(), nil)
	f.envFactory.EXPECT().Configure(gomock.Any())
	f.envFactory.EXPECT().Environment(gomock.Any()).Return(nil).AnyTimes()
	f.stamper.EXPECT().Fresh(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("configure: error: no acceptable compiler")).
		AnyTimes()

	err := f.app.Run(context.Background(), nil, 0, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestApp_Run_LoadFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(nil, errors.New("no such file"))

	err := f.app.Run(context.Background(), nil, 0, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load manifest")
}

func TestApp_Plan(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testManifest(), nil)
	f.envFactory.EXPECT().Configure(gomock.Any())

	names, err := f.app.Plan(0)
	require.NoError(t, err)

	assert.Contains(t, names, "fetch:zlib")
	assert.Contains(t, names, "release")
	// Dependencies come before their dependents.
	idx := func(name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx("fetch:zlib"), idx("build:zlib:arm64"))
	assert.Less(t, idx("build:zlib:arm64"), idx("merge:zlib"))
	assert.Equal(t, len(names)-1, idx("release"))
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)

	f.stamper.EXPECT().Clean().Return(nil)
	f.logger.EXPECT().Info("workspace cleaned")

	require.NoError(t, f.app.Clean())
}

func TestApp_CleanFailure(t *testing.T) {
	f := newFixture(t)

	f.stamper.EXPECT().Clean().Return(errors.New("permission denied"))

	err := f.app.Clean()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clean failed")
}
