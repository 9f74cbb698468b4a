package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Codeversity-bois/JD-parser/internal/models"
	"github.com/Codeversity-bois/JD-parser/internal/repositories"
)

type ResultHandler struct {
	runRepo repositories.RunRepository
}

func NewResultHandler(runRepo repositories.RunRepository) *ResultHandler {
	return &ResultHandler{runRepo: runRepo}
}

// HandleGetRun handles GET /runs/:id: report the run's status and, once
// completed, its full ranking report.
func (h *ResultHandler) HandleGetRun(c *fiber.Ctx) error {
	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid run ID",
		})
	}

	run, err := h.runRepo.FindByID(runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Evaluation run not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load evaluation run",
		})
	}

	return c.JSON(models.RunResultResponse{
		ID:           run.ID.String(),
		JobID:        run.JobID,
		Status:       string(run.Status),
		Report:       run.Report,
		ErrorMessage: run.ErrorMessage,
	})
}
