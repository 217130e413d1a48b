package events

import (
	"context"

	"note-ledger/cmd/server/handlers/handlerutil"
	"note-ledger/internal/services/events"
	"note-ledger/internal/services/listing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for the events service
type Service interface {
	List(ctx context.Context, page listing.Page) (*events.ListEventsResponse, error)
	ListForAggregate(ctx context.Context, aggregateID string, page listing.Page) (*events.ListEventsResponse, error)
}

// ListEventsRequest represents the events listing query
type ListEventsRequest struct {
	Limit       *int   `query:"limit"  validate:"omitempty,min=1,max=100" example:"20"`
	Offset      *int   `query:"offset" validate:"omitempty,min=0,max=50000" example:"0"`
	AggregateID string `query:"aggregate_id" validate:"omitempty,len=24,hexadecimal" example:"683cdb8aa96ad71e8e075bd1"`
}

// Handlers contains the events HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new events handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// List returns the audit log, newest first
// @Summary List events
// @Description Global audit trail of folder and note mutations, newest first.
// @Tags events
// @Produce json
// @Security Bearer
// @Param limit query int false "Limit (default: 20, max: 100)" minimum(1) maximum(100)
// @Param offset query int false "Offset (0-50,000)" minimum(0) maximum(50000)
// @Param aggregate_id query string false "Only events of this folder or note"
// @Success 200 {object} events.ListEventsResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /events [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req ListEventsRequest
	if err := handlerutil.ParseAndValidateQuery(c, &req, h.validator, "ListEvents"); err != nil {
		return err
	}
	page := listing.Query{Limit: req.Limit, Offset: req.Offset}.Page()

	var resp *events.ListEventsResponse
	if req.AggregateID != "" {
		resp, err = h.service.ListForAggregate(c.UserContext(), req.AggregateID, page)
	} else {
		resp, err = h.service.List(c.UserContext(), page)
	}
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListEvents", userID)
	}

	return c.JSON(resp)
}
