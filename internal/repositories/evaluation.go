package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

type RunRepository interface {
	Create(run *models.EvaluationRun) error
	FindByID(id uuid.UUID) (*models.EvaluationRun, error)
	UpdateStatus(id uuid.UUID, status models.RunStatus) error
	UpdateReport(id uuid.UUID, report *models.EvaluationReport) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingRuns(limit int) ([]models.EvaluationRun, error)
	Count() (int64, error)
}

type runRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(run *models.EvaluationRun) error {
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create evaluation run: %w", err)
	}
	return nil
}

func (r *runRepository) FindByID(id uuid.UUID) (*models.EvaluationRun, error) {
	var run models.EvaluationRun
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find evaluation run: %w", err)
	}
	return &run, nil
}

func (r *runRepository) UpdateStatus(id uuid.UUID, status models.RunStatus) error {
	result := r.db.Model(&models.EvaluationRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation run not found")
	}

	return nil
}

func (r *runRepository) UpdateReport(id uuid.UUID, report *models.EvaluationReport) error {
	result := r.db.Model(&models.EvaluationRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.StatusCompleted,
			"report":     report,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation run not found")
	}

	return nil
}

func (r *runRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.EvaluationRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation run not found")
	}

	return nil
}

func (r *runRepository) FindPendingRuns(limit int) ([]models.EvaluationRun, error) {
	var runs []models.EvaluationRun
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&runs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending runs: %w", err)
	}

	return runs, nil
}

// Count implements RunRepository.
func (r *runRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.EvaluationRun{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count evaluation runs: %w", err)
	}

	return count, nil
}
