package stamp

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Tracker implements ports.StampTracker with marker files whose mtime is
// the completion time, backed by a StateStore of task fingerprints.
type Tracker struct {
	layout domain.Layout
	state  *StateStore
	walker fsWalker
	hasher ports.Hasher
	clock  clockwork.Clock
}

var _ ports.StampTracker = (*Tracker)(nil)

// fsWalker is the subset of the fs adapter the tracker needs.
type fsWalker interface {
	NewestMTime(path string) (time.Time, error)
}

// NewTracker creates a Tracker.
func NewTracker(layout domain.Layout, state *StateStore, walker fsWalker, hasher ports.Hasher, clock clockwork.Clock) *Tracker {
	return &Tracker{
		layout: layout,
		state:  state,
		walker: walker,
		hasher: hasher,
		clock:  clock,
	}
}

// Fresh reports whether the task may be skipped. A stamp is fresh when
// it exists, its recorded fingerprint matches the task's current
// definition, and it is newer than every predecessor stamp and every
// declared input path.
func (t *Tracker) Fresh(task *domain.Task, preds []domain.Task) (bool, error) {
	if task.Kind == domain.KindGroup {
		return false, nil
	}

	info, err := os.Stat(task.StampPath.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, "failed to stat stamp")
	}
	stamped := info.ModTime()

	recorded := t.state.Get(task.Name.String())
	if recorded == nil || recorded.Fingerprint != t.hasher.FingerprintTask(task) {
		return false, nil
	}

	for _, pred := range preds {
		if pred.Kind == domain.KindGroup || pred.StampPath.String() == "" {
			continue
		}
		pi, err := os.Stat(pred.StampPath.String())
		if err != nil {
			// An unstamped predecessor invalidates the stamp regardless
			// of mtimes.
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}
			return false, zerr.Wrap(err, "failed to stat predecessor stamp")
		}
		if pi.ModTime().After(stamped) {
			return false, nil
		}
	}

	for _, input := range task.Inputs {
		newest, err := t.walker.NewestMTime(input.String())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}
			return false, zerr.Wrap(err, "failed to inspect input")
		}
		if newest.After(stamped) {
			return false, nil
		}
	}

	return true, nil
}

// Stamp records successful completion: the marker file is created or
// refreshed and its fingerprint is written to the state store. Group
// tasks carry no marker.
func (t *Tracker) Stamp(task *domain.Task) error {
	if task.Kind == domain.KindGroup {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(task.StampPath.String()), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create stamp directory")
	}
	if err := os.WriteFile(task.StampPath.String(), nil, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write stamp")
	}

	now := t.clock.Now()
	if err := os.Chtimes(task.StampPath.String(), now, now); err != nil {
		return zerr.Wrap(err, "failed to set stamp time")
	}

	return t.state.Put(domain.StampInfo{
		TaskName:    task.Name.String(),
		Fingerprint: t.hasher.FingerprintTask(task),
		Timestamp:   now,
	})
}

// Clean removes all markers, recorded state, work directories, and
// install prefixes. The next run starts from scratch.
func (t *Tracker) Clean() error {
	for _, dir := range t.layout.CleanDirs() {
		if err := os.RemoveAll(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove directory"), "dir", dir)
		}
	}
	return t.state.Reset()
}
