package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Codeversity-bois/JD-parser/internal/models"
	"github.com/Codeversity-bois/JD-parser/internal/repositories"
	"github.com/Codeversity-bois/JD-parser/internal/services"
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
	embedder      services.Embedder
	index         services.FieldIndex
	leetcode      services.LeetcodeService
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	embedder services.Embedder,
	index services.FieldIndex,
	leetcode services.LeetcodeService,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		embedder:      embedder,
		index:         index,
		leetcode:      leetcode,
	}
}

// HandleSubmit handles POST /candidates: fetch coding-platform stats, embed
// all profile fields and index them atomically, then store the profile.
func (h *CandidateHandler) HandleSubmit(c *fiber.Ctx) error {
	var req models.SubmitCandidateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.LeetcodeUsername == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "leetcode_username is required",
		})
	}
	if req.ResumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_text is required",
		})
	}
	if len(req.Projects) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one project is required",
		})
	}
	if len(req.Education) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one education entry is required",
		})
	}

	ctx := c.Context()
	candidateID := newEntityID("candidate")

	// Stats are fetched once at submission and never refreshed; a missing
	// profile is recorded, not rejected.
	stats := h.leetcode.GetComprehensiveProfile(ctx, req.LeetcodeUsername)

	candidate := &models.CandidateProfile{
		CandidateID:      candidateID,
		LeetcodeUsername: req.LeetcodeUsername,
		ResumeText:       req.ResumeText,
		Projects:         req.Projects,
		Education:        req.Education,
		InterviewAnswers: req.InterviewAnswers,
		ExternalStats:    stats,
		Vectors:          models.VectorSet{},
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	for fieldType, text := range services.CandidateFieldTexts(candidate) {
		vector, err := h.embedder.Embed(ctx, candidateID, fieldType, text)
		if err != nil {
			log.Printf("⚠️ Skipping field %s for candidate %s: %v\n", fieldType, candidateID, err)
			continue
		}
		candidate.Vectors[fieldType] = vector
	}

	if len(candidate.Vectors) == 0 {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to embed any candidate field",
		})
	}

	// All field vectors become queryable together or not at all.
	if err := h.index.InsertCandidate(ctx, candidateID, candidate.Vectors); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to index candidate vectors",
		})
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		// Roll the index back: orphaned vectors would keep matching against
		// jobs and crowd live candidates out of the similarity results.
		if cleanupErr := h.index.DeleteEntity(ctx, candidateID); cleanupErr != nil {
			log.Printf("⚠️ Failed to remove vectors for unstored candidate %s: %v\n", candidateID, cleanupErr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store candidate",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.SubmitCandidateResponse{
		CandidateID:         candidateID,
		LeetcodeUsername:    req.LeetcodeUsername,
		LeetcodeInfo:        summarizeStats(stats),
		EmbeddingsGenerated: len(candidate.Vectors),
		Message:             "Candidate profile submitted successfully",
	})
}

// HandleGet handles GET /candidates/:id
func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	candidate, err := h.candidateRepo.FindByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load candidate",
		})
	}

	return c.JSON(candidate)
}

// HandleList handles GET /candidates
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list candidates",
		})
	}

	return c.JSON(fiber.Map{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

func summarizeStats(stats models.JSONMap) models.JSONMap {
	exists, _ := stats["exists"].(bool)
	if !exists {
		return models.JSONMap{
			"profile_found": false,
			"message":       "LeetCode profile not found or unavailable",
		}
	}

	summary := models.JSONMap{"profile_found": true}
	if solved, ok := stats["solved_stats"].(map[string]interface{}); ok {
		summary["total_solved"] = solved["solvedProblem"]
	}
	if contest, ok := stats["contest_info"].(map[string]interface{}); ok {
		summary["contest_rating"] = contest["contestRating"]
	}
	return summary
}
