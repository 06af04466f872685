package pipeline

import "time"

// Stage describes the step a file is in.
type Stage string

const (
	// StageRead is the load stage.
	StageRead Stage = "read"
	// StageScan is the tag scanning and rewriting stage.
	StageScan Stage = "scan"
	// StageWrite is the persist stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file was modified.
	StatusDone Status = "done"
	// StatusUnchanged indicates the file needed no changes.
	StatusUnchanged Status = "unchanged"
	// StatusSkipped indicates the file was never opened.
	StatusSkipped Status = "skipped"
	// StatusError indicates processing failed.
	StatusError Status = "error"
)

// Finished reports whether no further events follow for the file.
func (s Status) Finished() bool {
	switch s {
	case StatusDone, StatusUnchanged, StatusSkipped, StatusError:
		return true
	}
	return false
}

// LabelCount is the number of identifiers assigned for one element label.
type LabelCount struct {
	Label string
	Count int
}

// Event reports progress for a file (or for the whole batch when File is empty).
type Event struct {
	File    string
	Syntax  string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Note carries the skip reason or a short status message.
	Note   string
	Counts []LabelCount
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}
