package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interview-service/internal/api/dto"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/service"
	apperrors "github.com/spec-kit/interview-service/pkg/util/errorutil"
)

// JobTitlesHandler serves the job title catalog.
type JobTitlesHandler struct {
	service *service.JobTitleService
}

func NewJobTitlesHandler(jobTitleService *service.JobTitleService) *JobTitlesHandler {
	return &JobTitlesHandler{service: jobTitleService}
}

// List GET /job-titles.
func (h *JobTitlesHandler) List(c *fiber.Ctx) error {
	titles, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.JobTitleResponse, 0, len(titles))
	for i := range titles {
		items = append(items, jobTitleResponse(&titles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /job-titles.
func (h *JobTitlesHandler) Create(c *fiber.Ctx) error {
	var req dto.JobTitleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	title, err := h.service.Create(c.UserContext(), req.Title)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobTitleResponse(title)})
}

func jobTitleResponse(t *domain.JobTitle) dto.JobTitleResponse {
	return dto.JobTitleResponse{ID: t.ID, Title: t.Title, CreatedAt: t.CreatedAt}
}
