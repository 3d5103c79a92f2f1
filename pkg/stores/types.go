package stores

import "time"

// RunStatus represents the status of a recorded chain run.
type RunStatus string

const (
	RunStatusRunning     RunStatus = "running"
	RunStatusCompleted   RunStatus = "completed"
	RunStatusFailed      RunStatus = "failed"
	RunStatusInterrupted RunStatus = "interrupted"
)

// Run represents one chain execution.
type Run struct {
	ID          string     `json:"id"`
	Suite       string     `json:"suite"`
	RootOp      string     `json:"root_op"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	Steps       int        `json:"steps"`
	ArtifactDir string     `json:"artifact_dir"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
