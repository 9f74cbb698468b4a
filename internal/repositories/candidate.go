package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.CandidateProfile) error
	FindByID(candidateID string) (*models.CandidateProfile, error)
	ListAll() ([]models.CandidateProfile, error)
	Count() (int64, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(candidate *models.CandidateProfile) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(candidateID string) (*models.CandidateProfile, error) {
	var candidate models.CandidateProfile
	if err := r.db.Where("candidate_id = ?", candidateID).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}

		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}

	return &candidate, nil
}

// ListAll returns the full candidate pool for one pipeline run.
func (r *candidateRepository) ListAll() ([]models.CandidateProfile, error) {
	var candidates []models.CandidateProfile
	if err := r.db.Order("candidate_id ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, nil
}

// Count implements CandidateRepository.
func (r *candidateRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.CandidateProfile{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	return count, nil
}
