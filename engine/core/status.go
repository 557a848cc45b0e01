package core

// -----------------------------------------------------------------------------
// Execution Status
// -----------------------------------------------------------------------------

type StatusType string

const (
	StatusPending  StatusType = "PENDING"
	StatusRunning  StatusType = "RUNNING"
	StatusSuccess  StatusType = "SUCCESS"
	StatusFailed   StatusType = "FAILED"
	StatusTimedOut StatusType = "TIMED_OUT"
	StatusCanceled StatusType = "CANCELED"
	StatusWaiting  StatusType = "WAITING"
)

func (s StatusType) String() string {
	return string(s)
}

// IsTerminal reports whether no further progress can occur from s.
func (s StatusType) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusTimedOut, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsError reports whether s is a terminal status that did not succeed.
func (s StatusType) IsError() bool {
	switch s {
	case StatusFailed, StatusTimedOut, StatusCanceled:
		return true
	default:
		return false
	}
}
