package audit

import (
	"context"
	"log/slog"
	"time"
)

// Entry is an immutable record of an authenticated actor performing a
// mutating action on an entity. Created only after the business handler
// reported success; never updated or deleted by this subsystem.
type Entry struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	ActorID     int64     `json:"actor_id"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	Action      string    `json:"action"`
	BeforeState *string   `json:"before_state,omitempty"`
	AfterState  *string   `json:"after_state,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Entry) TableName() string { return "audit_entries" }

// RepositoryAPI is the insert-only persistence surface for audit entries.
type RepositoryAPI interface {
	Create(entry *Entry) error
}

// Recorder persists audit entries best-effort: a failed write is logged
// and reported to the caller, which must never let it alter the response
// already produced for the business operation.
type Recorder struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewRecorder(repo RepositoryAPI, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, entry *Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := r.repo.Create(entry); err != nil {
		r.logger.Error("audit write failed",
			"error", err,
			"actor_id", entry.ActorID,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"action", entry.Action)
		return err
	}

	return nil
}
