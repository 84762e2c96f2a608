package postgres

import (
	"errors"
	"time"

	appErrors "github.com/frahmantamala/jobcard-management/internal"
	"github.com/frahmantamala/jobcard-management/internal/jobcard"
	"gorm.io/gorm"
)

// JobCardRepository implements the jobcard.Repository interface using GORM.
type JobCardRepository struct {
	db *gorm.DB
}

func NewJobCardRepository(db *gorm.DB) jobcard.Repository {
	return &JobCardRepository{db: db}
}

func (r *JobCardRepository) Create(card *jobcard.JobCard) error {
	return r.db.Create(card).Error
}

func (r *JobCardRepository) GetByID(id int64) (*jobcard.JobCard, error) {
	var card jobcard.JobCard
	err := r.db.Where("id = ?", id).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrJobCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *JobCardRepository) GetAll(limit, offset int) ([]*jobcard.JobCard, error) {
	var cards []*jobcard.JobCard
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&cards).Error
	return cards, err
}

func (r *JobCardRepository) GetPendingApprovals(limit, offset int) ([]*jobcard.JobCard, error) {
	var cards []*jobcard.JobCard
	err := r.db.Where("status = ?", jobcard.StatusPendingApproval).
		Order("created_at ASC"). // FIFO for approvals
		Limit(limit).
		Offset(offset).
		Find(&cards).Error
	return cards, err
}

func (r *JobCardRepository) Update(card *jobcard.JobCard) error {
	card.UpdatedAt = time.Now()
	return r.db.Save(card).Error
}

func (r *JobCardRepository) UpdateStatus(id int64, status string, approvedBy int64, approvedAt time.Time) error {
	return r.db.Model(&jobcard.JobCard{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approvedBy,
			"approved_at": approvedAt,
			"updated_at":  time.Now(),
		}).Error
}
