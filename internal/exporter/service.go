package exporter

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/jobcard-management/internal"
)

// Service handles exporter business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateExporter(dto *CreateExporterDTO) (*Exporter, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByLicense(dto.LicenseNo); err == nil && existing != nil {
		return nil, errors.ErrDuplicateLicense
	}

	exp := &Exporter{
		Name:         dto.Name,
		LicenseNo:    dto.LicenseNo,
		ContactEmail: dto.ContactEmail,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(exp); err != nil {
		s.logger.Error("failed to create exporter", "error", err, "license_no", dto.LicenseNo)
		return nil, err
	}

	s.logger.Info("exporter registered", "exporter_id", exp.ID, "license_no", exp.LicenseNo)

	return exp, nil
}

func (s *Service) GetExporterByID(id int64) (*Exporter, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrExporterNotFound
	}
	return exp, nil
}

func (s *Service) GetExporters(limit, offset int) ([]*Exporter, error) {
	exporters, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list exporters", "error", err)
		return nil, err
	}
	return exporters, nil
}

func (s *Service) UpdateExporter(id int64, dto *UpdateExporterDTO) (*Exporter, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrExporterNotFound
	}

	if dto.Name != nil {
		exp.Name = *dto.Name
	}
	if dto.ContactEmail != nil {
		exp.ContactEmail = *dto.ContactEmail
	}
	if dto.IsActive != nil {
		exp.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(exp); err != nil {
		s.logger.Error("failed to update exporter", "error", err, "exporter_id", id)
		return nil, err
	}

	return exp, nil
}

// IsActive satisfies jobcard.ExporterChecker.
func (s *Service) IsActive(exporterID int64) (bool, error) {
	exp, err := s.repo.GetByID(exporterID)
	if err != nil {
		return false, err
	}
	return exp.IsActive, nil
}
