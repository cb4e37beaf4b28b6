package lipo

// SetRunner swaps the external tool runner for tests.
func (m *Merger) SetRunner(r runner) { m.run = r }

// SetRunner swaps the external tool runner for tests.
func (i *Inspector) SetRunner(r runner) { i.run = r }

// Runner re-exports the runner type for test doubles.
type Runner = runner
