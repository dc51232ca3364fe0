package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interview-service/internal/api/dto"
	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/service"
	apperrors "github.com/spec-kit/interview-service/pkg/util/errorutil"
)

// InterviewsHandler serves interview queries and CRUD.
type InterviewsHandler struct {
	service *service.InterviewService
}

// NewInterviewsHandler constructs handler.
func NewInterviewsHandler(interviewService *service.InterviewService) *InterviewsHandler {
	return &InterviewsHandler{service: interviewService}
}

// ByDate GET /interview/date/?date=YYYY-MM-DD.
func (h *InterviewsHandler) ByDate(c *fiber.Ctx) error {
	items, err := h.service.ByDate(c.UserContext(), c.Query("date"), c.Query("department"))
	return respondList(c, items, err)
}

// Week GET /interview/week/.
func (h *InterviewsHandler) Week(c *fiber.Ctx) error {
	items, err := h.service.ThisWeek(c.UserContext(), c.Query("date"), c.Query("department"))
	return respondList(c, items, err)
}

// WorkWeek GET /interview/work-week/.
func (h *InterviewsHandler) WorkWeek(c *fiber.Ctx) error {
	items, err := h.service.ThisWorkWeek(c.UserContext(), c.Query("department"))
	return respondList(c, items, err)
}

// Month GET /interview/month/?year=&month=.
func (h *InterviewsHandler) Month(c *fiber.Ctx) error {
	items, err := h.service.ByMonth(c.UserContext(), c.Query("year"), c.Query("month"), c.Query("department"))
	return respondList(c, items, err)
}

// Range GET /interview/range/?start=&end=.
func (h *InterviewsHandler) Range(c *fiber.Ctx) error {
	items, err := h.service.ByRange(c.UserContext(), c.Query("start"), c.Query("end"), c.Query("department"))
	return respondList(c, items, err)
}

// Department GET /interview/department/.
func (h *InterviewsHandler) Department(c *fiber.Ctx) error {
	items, err := h.service.ByDepartment(c.UserContext(), c.Query("department"))
	return respondList(c, items, err)
}

// List GET /interview/.
func (h *InterviewsHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	return respondList(c, items, err)
}

// Get GET /interview/:id.
func (h *InterviewsHandler) Get(c *fiber.Ctx) error {
	id, err := interviewID(c)
	if err != nil {
		return err
	}
	interview, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInterviewResponse(interview)})
}

// Create POST /interview/.
func (h *InterviewsHandler) Create(c *fiber.Ctx) error {
	input, err := parseInterviewRequest(c)
	if err != nil {
		return err
	}
	interview, err := h.service.Create(c.UserContext(), actorID(c), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewInterviewResponse(interview)})
}

// Update PUT /interview/:id.
func (h *InterviewsHandler) Update(c *fiber.Ctx) error {
	id, err := interviewID(c)
	if err != nil {
		return err
	}
	input, err := parseInterviewRequest(c)
	if err != nil {
		return err
	}
	interview, err := h.service.Update(c.UserContext(), actorID(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInterviewResponse(interview)})
}

// Delete DELETE /interview/:id.
func (h *InterviewsHandler) Delete(c *fiber.Ctx) error {
	id, err := interviewID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actorID(c), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func respondList(c *fiber.Ctx, items []domain.Interview, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInterviewList(items)})
}

func parseInterviewRequest(c *fiber.Ctx) (service.InterviewInput, error) {
	var req dto.InterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return service.InterviewInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.InterviewInput{
		Interviewee:     req.Interviewee,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.Duration,
		Role:            req.Role,
		Interviewer:     req.Interviewer,
		JobTitle:        req.JobTitle,
		BusinessArea:    req.BusinessArea,
		Department:      req.Department,
		AdditionalNotes: req.AdditionalNotes,
	}, nil
}

func interviewID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidFormat("invalid interview id", map[string]any{"field": "id"})
	}
	return id, nil
}

func actorID(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.User != nil {
		return principal.User.ID
	}
	return ""
}
