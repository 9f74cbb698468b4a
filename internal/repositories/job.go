package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

type JobRepository interface {
	Create(job *models.JobProfile) error
	FindByID(jobID string) (*models.JobProfile, error)
	List(limit int) ([]models.JobProfile, error)
	Delete(jobID string) error
	Count() (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.JobProfile) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(jobID string) (*models.JobProfile, error) {
	var job models.JobProfile
	if err := r.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}

		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// List implements JobRepository.
func (r *jobRepository) List(limit int) ([]models.JobProfile, error) {
	var jobs []models.JobProfile
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// Delete implements JobRepository.
func (r *jobRepository) Delete(jobID string) error {
	result := r.db.Where("job_id = ?", jobID).Delete(&models.JobProfile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Count implements JobRepository.
func (r *jobRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.JobProfile{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}
