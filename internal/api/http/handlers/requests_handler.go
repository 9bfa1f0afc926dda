package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-desk/internal/api/dto"
	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/service"
	"github.com/spec-kit/request-desk/internal/workflow"
)

// RequestsHandler manages service request endpoints.
type RequestsHandler struct {
	service  *service.RequestService
	validate *validator.Validate
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService, validate *validator.Validate) *RequestsHandler {
	return &RequestsHandler{service: requestService, validate: validate}
}

// ListRequests GET /requests.
func (h *RequestsHandler) ListRequests(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	filter := service.RequestListFilter{}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		s := domain.RequestStatus(status)
		filter.Status = &s
	}
	items, err := h.service.ListRequests(c.UserContext(), user, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"requests": dto.NewRequestResponses(items)})
}

// CreateRequest POST /requests.
func (h *RequestsHandler) CreateRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateRequestRequest
	if err := bindAndValidate(c, h.validate, &req); err != nil {
		return err
	}
	created, err := h.service.CreateRequest(c.UserContext(), user, service.RequestCreateInput{
		MajorCategory: req.MajorCategory,
		MinorCategory: req.MinorCategory,
		Title:         req.Title,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"request": dto.NewRequestResponse(*created)})
}

// GetRequest GET /requests/:id.
func (h *RequestsHandler) GetRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	req, err := h.service.GetRequest(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"request": h.detail(user, *req)})
}

// UpdateStatus PATCH /requests/:id.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := bindAndValidate(c, h.validate, &req); err != nil {
		return err
	}
	updated, err := h.service.ChangeStatus(c.UserContext(), user, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"request": h.detail(user, *updated)})
}

// Stats GET /requests/stats.
func (h *RequestsHandler) Stats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": dto.RequestStatsResponse{
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Done:       stats.Done,
		Rejected:   stats.Rejected,
		Total:      stats.Total,
	}})
}

func (h *RequestsHandler) detail(user domain.User, req domain.Request) dto.RequestDetailResponse {
	return dto.RequestDetailResponse{
		RequestResponse: dto.NewRequestResponse(req),
		Progress:        workflow.Index(req.Status),
		Actions:         h.service.AvailableActions(user, req),
	}
}
