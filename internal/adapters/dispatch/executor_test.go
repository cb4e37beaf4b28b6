package dispatch_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/fab/internal/adapters/dispatch"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports/mocks"
)

type fixture struct {
	shell     *mocks.MockExecutor
	fetcher   *mocks.MockSourceFetcher
	extractor *mocks.MockExtractor
	merger    *mocks.MockMerger
	executor  *dispatch.Executor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		shell:     mocks.NewMockExecutor(ctrl),
		fetcher:   mocks.NewMockSourceFetcher(ctrl),
		extractor: mocks.NewMockExtractor(ctrl),
		merger:    mocks.NewMockMerger(ctrl),
	}
	f.executor = dispatch.NewExecutor(f.shell, f.fetcher, f.extractor, f.merger)
	return f
}

func TestExecutor_BuildGoesToShell(t *testing.T) {
	f := newFixture(t)

	task := &domain.Task{
		Name: domain.NewInternedString("build:zlib:arm64"),
		Kind: domain.KindBuild,
	}
	env := []string{"CC=clang"}

	f.shell.EXPECT().Execute(gomock.Any(), task, env, io.Discard).Return(nil)

	require.NoError(t, f.executor.Execute(context.Background(), task, env, io.Discard))
}

func TestExecutor_FetchThenExtract(t *testing.T) {
	f := newFixture(t)

	src := &domain.Source{
		URL:       domain.NewInternedString("https://example.test/zlib.tar.gz"),
		Checksum:  domain.NewInternedString("ab12"),
		ExtractTo: domain.NewInternedString("/work/sources/zlib"),
	}
	task := &domain.Task{
		Name:   domain.NewInternedString("fetch:zlib"),
		Kind:   domain.KindFetch,
		Source: src,
	}

	gomock.InOrder(
		f.fetcher.EXPECT().Fetch(gomock.Any(), src).Return("/cache/zlib.tar.gz", nil),
		f.extractor.EXPECT().Extract("/cache/zlib.tar.gz", "/work/sources/zlib").Return(nil),
	)

	require.NoError(t, f.executor.Execute(context.Background(), task, nil, io.Discard))
}

func TestExecutor_FetchFailureSkipsExtract(t *testing.T) {
	f := newFixture(t)

	src := &domain.Source{
		URL:      domain.NewInternedString("https://example.test/zlib.tar.gz"),
		Checksum: domain.NewInternedString("ab12"),
	}
	task := &domain.Task{
		Name:   domain.NewInternedString("fetch:zlib"),
		Kind:   domain.KindFetch,
		Source: src,
	}

	fetchErr := errors.New("download failed")
	f.fetcher.EXPECT().Fetch(gomock.Any(), src).Return("", fetchErr)

	err := f.executor.Execute(context.Background(), task, nil, io.Discard)
	assert.ErrorIs(t, err, fetchErr)
}

func TestExecutor_FetchWithoutSource(t *testing.T) {
	f := newFixture(t)

	task := &domain.Task{
		Name: domain.NewInternedString("fetch:broken"),
		Kind: domain.KindFetch,
	}

	err := f.executor.Execute(context.Background(), task, nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source")
}

func TestExecutor_MergeRunsAllSpecs(t *testing.T) {
	f := newFixture(t)

	specA := domain.MergeSpec{Artifact: "lib/libz.a", Output: "/out/libz.a"}
	specB := domain.MergeSpec{Artifact: "bin/getit", Output: "/out/getit"}
	task := &domain.Task{
		Name:   domain.NewInternedString("merge:zlib"),
		Kind:   domain.KindMerge,
		Merges: []domain.MergeSpec{specA, specB},
	}

	f.merger.EXPECT().Merge(gomock.Any(), specA).Return(nil)
	f.merger.EXPECT().Merge(gomock.Any(), specB).Return(nil)

	require.NoError(t, f.executor.Execute(context.Background(), task, nil, io.Discard))
}

func TestExecutor_MergeFailurePropagates(t *testing.T) {
	f := newFixture(t)

	specA := domain.MergeSpec{Artifact: "lib/libz.a"}
	task := &domain.Task{
		Name:   domain.NewInternedString("merge:zlib"),
		Kind:   domain.KindMerge,
		Merges: []domain.MergeSpec{specA},
	}

	mergeErr := errors.New("wrong slices")
	f.merger.EXPECT().Merge(gomock.Any(), specA).Return(mergeErr)

	err := f.executor.Execute(context.Background(), task, nil, io.Discard)
	assert.ErrorIs(t, err, mergeErr)
}

func TestExecutor_GroupIsBodiless(t *testing.T) {
	f := newFixture(t)

	task := &domain.Task{
		Name: domain.NewInternedString("deps"),
		Kind: domain.KindGroup,
	}

	// No adapter expectations: groups complete without side effects.
	require.NoError(t, f.executor.Execute(context.Background(), task, nil, io.Discard))
}

func TestExecutor_UnknownKind(t *testing.T) {
	f := newFixture(t)

	task := &domain.Task{
		Name: domain.NewInternedString("weird"),
		Kind: domain.TaskKind("teleport"),
	}

	err := f.executor.Execute(context.Background(), task, nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task kind")
}
