package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Codeversity-bois/JD-parser/internal/models"
	"github.com/Codeversity-bois/JD-parser/internal/repositories"
	"github.com/Codeversity-bois/JD-parser/internal/services"
)

type JobHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	runRepo       repositories.RunRepository
	parser        services.JobParser
	embedder      services.Embedder
	index         services.FieldIndex
	worker        services.Worker
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	runRepo repositories.RunRepository,
	parser services.JobParser,
	embedder services.Embedder,
	index services.FieldIndex,
	worker services.Worker,
) *JobHandler {
	return &JobHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		runRepo:       runRepo,
		parser:        parser,
		embedder:      embedder,
		index:         index,
		worker:        worker,
	}
}

// HandleSubmitJob handles POST /jobs: parse, embed and store one job
// description. Re-submitting the same text creates a new job.
func (h *JobHandler) HandleSubmitJob(c *fiber.Ctx) error {
	var req models.SubmitJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	ctx := c.Context()
	parsed := h.parser.Parse(ctx, req.Description)

	job := &models.JobProfile{
		JobID:            newEntityID("job"),
		Title:            parsed.Title,
		Company:          firstNonEmpty(req.Company, parsed.Company),
		Location:         firstNonEmpty(req.Location, parsed.Location),
		Description:      req.Description,
		RequiredSkills:   parsed.RequiredSkills,
		PreferredSkills:  parsed.PreferredSkills,
		ExperienceYears:  parsed.ExperienceYears,
		Education:        parsed.Education,
		Responsibilities: parsed.Responsibilities,
		Benefits:         parsed.Benefits,
		JobType:          parsed.JobType,
		SalaryRange:      parsed.SalaryRange,
		Vectors:          models.VectorSet{},
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	// One vector per extracted field; a field that fails to embed is simply
	// absent from the job's vector set.
	for fieldType, text := range services.JobFieldTexts(job) {
		vector, err := h.embedder.Embed(ctx, job.JobID, fieldType, text)
		if err != nil {
			log.Printf("⚠️ Skipping field %s for job %s: %v\n", fieldType, job.JobID, err)
			continue
		}
		job.Vectors[fieldType] = vector
	}

	if len(job.Vectors) == 0 {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to embed any job field",
		})
	}

	if err := h.index.InsertJob(ctx, job.JobID, job.Vectors); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to index job vectors",
		})
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleGetJob handles GET /jobs/:id
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	job, err := h.jobRepo.FindByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load job",
		})
	}

	return c.JSON(job)
}

// HandleListJobs handles GET /jobs
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	jobs, err := h.jobRepo.List(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// HandleDeleteJob handles DELETE /jobs/:id: remove the job row and its field
// vectors from the index. Past evaluation runs for the job are kept.
func (h *JobHandler) HandleDeleteJob(c *fiber.Ctx) error {
	jobID := c.Params("id")

	if err := h.jobRepo.Delete(jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete job",
		})
	}

	// The row is gone either way; leftover vectors would never be matched
	// against, but clean them up so the index does not accumulate garbage.
	if err := h.index.DeleteEntity(c.Context(), jobID); err != nil {
		log.Printf("⚠️ Failed to remove vectors for deleted job %s: %v\n", jobID, err)
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"message": "Job deleted successfully",
	})
}

// HandleEvaluate handles POST /jobs/:id/evaluate: queue one pipeline run for
// the job against the whole candidate pool.
func (h *JobHandler) HandleEvaluate(c *fiber.Ctx) error {
	jobID := c.Params("id")

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load job",
		})
	}

	count, err := h.candidateRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count candidates",
		})
	}
	if count == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No candidates found in database",
		})
	}

	run := &models.EvaluationRun{
		ID:        uuid.New(),
		JobID:     jobID,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.runRepo.Create(run); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create evaluation run",
		})
	}

	h.worker.EnqueueRun(run.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.EvaluateResponse{
		RunID:  run.ID.String(),
		JobID:  jobID,
		Status: string(models.StatusQueued),
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
