package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Codeversity-bois/JD-parser/internal/repositories"
)

type StatsHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	runRepo       repositories.RunRepository
}

func NewStatsHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	runRepo repositories.RunRepository,
) *StatsHandler {
	return &StatsHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		runRepo:       runRepo,
	}
}

// HandleGetStats handles GET /stats
func (h *StatsHandler) HandleGetStats(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count jobs",
		})
	}

	candidates, err := h.candidateRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count candidates",
		})
	}

	runs, err := h.runRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count evaluation runs",
		})
	}

	return c.JSON(fiber.Map{
		"total_jobs":       jobs,
		"total_candidates": candidates,
		"total_runs":       runs,
	})
}
