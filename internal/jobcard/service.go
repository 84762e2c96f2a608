package jobcard

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/jobcard-management/internal"
)

// ExporterChecker verifies the exporter a card references is registered
// and active.
type ExporterChecker interface {
	IsActive(exporterID int64) (bool, error)
}

// Service handles job card business logic.
type Service struct {
	repo      Repository
	exporters ExporterChecker
	logger    *slog.Logger
}

func NewService(repo Repository, exporters ExporterChecker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		exporters: exporters,
		logger:    logger,
	}
}

// CreateJobCard opens a new card for a registered, active exporter.
func (s *Service) CreateJobCard(dto *CreateJobCardDTO, userID int64) (*JobCard, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("job card validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	active, err := s.exporters.IsActive(dto.ExporterID)
	if err != nil {
		s.logger.Error("failed to check exporter", "error", err, "exporter_id", dto.ExporterID)
		return nil, errors.ErrExporterNotFound
	}
	if !active {
		return nil, errors.ErrExporterInactive
	}

	card := &JobCard{
		Reference:  dto.Reference,
		ExporterID: dto.ExporterID,
		Commodity:  dto.Commodity,
		Grade:      dto.Grade,
		QuantityKG: dto.QuantityKG,
		Notes:      dto.Notes,
		Status:     StatusOpen,
		CreatedBy:  userID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.Create(card); err != nil {
		s.logger.Error("failed to create job card", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("job card created",
		"jobcard_id", card.ID,
		"reference", card.Reference,
		"user_id", userID)

	return card, nil
}

func (s *Service) GetJobCardByID(id int64) (*JobCard, error) {
	card, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get job card", "error", err, "jobcard_id", id)
		return nil, errors.ErrJobCardNotFound
	}
	return card, nil
}

func (s *Service) GetJobCards(limit, offset int) ([]*JobCard, error) {
	cards, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list job cards", "error", err)
		return nil, err
	}
	return cards, nil
}

func (s *Service) GetPendingApprovals(limit, offset int) ([]*JobCard, error) {
	cards, err := s.repo.GetPendingApprovals(limit, offset)
	if err != nil {
		s.logger.Error("failed to list pending approvals", "error", err)
		return nil, err
	}
	return cards, nil
}

// UpdateJobCard applies partial updates while a card is still open.
func (s *Service) UpdateJobCard(id int64, dto *UpdateJobCardDTO) (*JobCard, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	card, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrJobCardNotFound
	}

	if card.Status != StatusOpen && card.Status != StatusInProgress {
		return nil, errors.ErrCannotModifyJobCard
	}

	if dto.Grade != nil {
		card.Grade = *dto.Grade
	}
	if dto.QuantityKG != nil {
		card.QuantityKG = *dto.QuantityKG
	}
	if dto.Notes != nil {
		card.Notes = *dto.Notes
	}

	if err := s.repo.Update(card); err != nil {
		s.logger.Error("failed to update job card", "error", err, "jobcard_id", id)
		return nil, err
	}

	return card, nil
}

// SubmitForApproval moves an open card into the approval queue.
func (s *Service) SubmitForApproval(id int64) (*JobCard, error) {
	card, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrJobCardNotFound
	}

	if card.Status != StatusOpen && card.Status != StatusInProgress {
		return nil, errors.ErrInvalidJobCardStatus
	}

	card.Status = StatusPendingApproval
	if err := s.repo.Update(card); err != nil {
		s.logger.Error("failed to submit job card", "error", err, "jobcard_id", id)
		return nil, err
	}

	return card, nil
}

// ApproveJobCard clears a pending card for export.
func (s *Service) ApproveJobCard(id int64, approverID int64) (*JobCard, error) {
	card, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrJobCardNotFound
	}

	if card.Status != StatusPendingApproval {
		return nil, errors.ErrInvalidJobCardStatus
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(id, StatusApproved, approverID, now); err != nil {
		s.logger.Error("failed to approve job card", "error", err, "jobcard_id", id)
		return nil, err
	}

	card.Status = StatusApproved
	card.ApprovedBy = &approverID
	card.ApprovedAt = &now

	s.logger.Info("job card approved", "jobcard_id", id, "approver_id", approverID)

	return card, nil
}

// RejectJobCard sends a pending card back with a reason.
func (s *Service) RejectJobCard(id int64, approverID int64, reason string) (*JobCard, error) {
	card, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrJobCardNotFound
	}

	if card.Status != StatusPendingApproval {
		return nil, errors.ErrInvalidJobCardStatus
	}

	card.Status = StatusRejected
	if reason != "" {
		card.Notes = reason
	}
	if err := s.repo.Update(card); err != nil {
		s.logger.Error("failed to reject job card", "error", err, "jobcard_id", id)
		return nil, err
	}

	s.logger.Info("job card rejected", "jobcard_id", id, "approver_id", approverID)

	return card, nil
}
