package core

import "time"

// RunStatus represents the lifecycle state of a check run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded check run over a schema set.
type Run struct {
	ID          string     `json:"id"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Documents   int        `json:"documents"`
	Findings    int        `json:"findings"`
	Error       string     `json:"error,omitempty"`
}

// FindingRecord is one persisted finding. Severity and kind are stored
// as their string names so the history survives enum reordering.
type FindingRecord struct {
	RunID    string `json:"run_id"`
	Document string `json:"document"`
	RuleID   string `json:"rule_id,omitempty"`
	Rule     string `json:"rule"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

// Store persists check runs and their findings.
type Store interface {
	// Open opens the store at the given path. Use ":memory:" for an
	// ephemeral store.
	Open(path string) error

	// Close releases the underlying resources.
	Close() error

	// Migrate brings the store's schema up to date.
	Migrate() error

	// CreateRun starts a new run in the running state.
	CreateRun() (*Run, error)

	// CompleteRun marks a run as finished with final counts and status.
	CompleteRun(id string, status RunStatus, documents, findings int, errMsg string) error

	// GetRun retrieves a run by ID.
	GetRun(id string) (*Run, error)

	// GetLatestRun retrieves the most recent completed run, or nil when
	// there is none.
	GetLatestRun() (*Run, error)

	// ListRuns retrieves the most recent runs up to the given limit.
	ListRuns(limit int) ([]*Run, error)

	// SaveFindings persists the findings of a run in order.
	SaveFindings(runID string, findings []FindingRecord) error

	// FindingsForRun retrieves a run's findings in saved order.
	FindingsForRun(runID string) ([]FindingRecord, error)
}
