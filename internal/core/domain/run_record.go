package domain

import "time"

// RunOutcome describes how a server run ended.
type RunOutcome string

const (
	// OutcomeExited is a server that exited with status 0.
	OutcomeExited RunOutcome = "exited"
	// OutcomeFailed is a server that could not start or exited nonzero.
	OutcomeFailed RunOutcome = "failed"
	// OutcomeInterrupted is a server stopped by the operator.
	OutcomeInterrupted RunOutcome = "interrupted"
)

// RunRecord is the journaled result of the last run of a server script.
type RunRecord struct {
	Script      string     `json:"script,omitzero"`
	Interpreter string     `json:"interpreter,omitzero"`
	StartedAt   time.Time  `json:"started_at,omitzero"`
	FinishedAt  time.Time  `json:"finished_at,omitzero"`
	ExitCode    int        `json:"exit_code"`
	Outcome     RunOutcome `json:"outcome,omitzero"`
	Restarts    int        `json:"restarts,omitzero"`
}

// Duration returns how long the run lasted.
func (r RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
