package domain

import "time"

// StampInfo is the metadata recorded alongside a task's completion
// marker. The marker file's mtime is authoritative for freshness; the
// fingerprint additionally invalidates the stamp when the task's
// definition (commands, flags, environment) changes without any source
// file being touched.
type StampInfo struct {
	TaskName    string    `json:"task_name,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
