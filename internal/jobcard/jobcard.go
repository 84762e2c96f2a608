package jobcard

import (
	"time"
)

// Job card lifecycle statuses.
const (
	StatusOpen            = "open"
	StatusInProgress      = "in_progress"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusClosed          = "closed"
)

// JobCard tracks one consignment of produce through grading, pricing and
// export clearance.
type JobCard struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	Reference  string     `gorm:"uniqueIndex" json:"reference"`
	ExporterID int64      `json:"exporter_id"`
	Commodity  string     `json:"commodity"`
	Grade      string     `json:"grade"`
	QuantityKG int64      `json:"quantity_kg"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	CreatedBy  int64      `json:"created_by"`
	ApprovedBy *int64     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (JobCard) TableName() string { return "job_cards" }

// Repository defines the data access methods for job cards.
type Repository interface {
	Create(card *JobCard) error
	GetByID(id int64) (*JobCard, error)
	GetAll(limit, offset int) ([]*JobCard, error)
	GetPendingApprovals(limit, offset int) ([]*JobCard, error)
	Update(card *JobCard) error
	UpdateStatus(id int64, status string, approvedBy int64, approvedAt time.Time) error
}
