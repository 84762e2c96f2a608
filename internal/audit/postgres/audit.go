package postgres

import (
	"github.com/frahmantamala/jobcard-management/internal/audit"
	"gorm.io/gorm"
)

// AuditRepository implements the audit.RepositoryAPI interface using GORM.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(entry *audit.Entry) error {
	return r.db.Create(entry).Error
}
