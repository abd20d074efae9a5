package domain

import "time"

type execStatus int

const (
	// Run is not recorded yet
	ExecStatusNew execStatus = iota

	// Run recorded, reconcile in progress
	ExecStatusStarted

	// Run finished with an error, Message holds it
	ExecStatusFailure

	// Run finished, FilesModified files were rewritten
	ExecStatusSuccess
)

func (s execStatus) String() string {
	switch s {
	case ExecStatusStarted:
		return "started"
	case ExecStatusFailure:
		return "failure"
	case ExecStatusSuccess:
		return "success"
	default:
		return "new"
	}
}

// Run is one reconcile pass as recorded in the journal.
type Run struct {
	Id int64 // identifier for DB

	RunId  string // uuid shared with log lines of the same run
	Action string // hook, action or serve trigger that started the run

	ExecStatus execStatus

	FilesTotal    int
	FilesModified int
	Message       string

	CreatedAt  time.Time
	FinishedAt *time.Time
}
