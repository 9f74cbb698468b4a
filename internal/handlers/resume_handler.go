package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Codeversity-bois/JD-parser/internal/models"
	"github.com/Codeversity-bois/JD-parser/internal/services"
)

type ResumeHandler struct {
	storage   services.StorageService
	pdfParser services.PDFParserService
}

func NewResumeHandler(storage services.StorageService, pdfParser services.PDFParserService) *ResumeHandler {
	return &ResumeHandler{
		storage:   storage,
		pdfParser: pdfParser,
	}
}

// HandleUpload handles POST /resumes: accept a PDF, extract its text
// and hand it back so the caller can include it in a candidate submission.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	filename, filePath, err := h.storage.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are accepted",
		})
	}

	content, err := h.pdfParser.ExtractResume(filePath)
	if err != nil {
		if delErr := h.storage.DeleteFile(filename); delErr != nil {
			log.Printf("⚠️ Failed to clean up unreadable resume %s: %v\n", filename, delErr)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Failed to extract text from PDF",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.ResumeUploadResponse{
		Filename:   filename,
		ResumeText: content.Text,
		Pages:      content.PageCount,
	})
}
