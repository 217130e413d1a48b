package handlerutil

import (
	"errors"

	"note-ledger/cmd/server/ctxkeys"
	"note-ledger/cmd/server/handlers/httperr"
	"note-ledger/internal/domain"
	"note-ledger/internal/logger"
	"note-ledger/internal/services/listing"
	"note-ledger/internal/store"
	util "note-ledger/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GetUserID extracts the owner id placed in Locals by the jwt middleware
func GetUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(ctxkeys.UserIDKey).(string)
	if !ok || userID == "" {
		logger.L().Error("user ID not found in context", "handler", "GetUserID", "path", c.Path())
		return "", httperr.Fail(httperr.ErrUnauthorized)
	}
	return userID, nil
}

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, v *validator.Validate, handlerName string) error {
	userID, _ := GetUserID(c)

	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "userID", userID, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := util.ValidateCtx(c.UserContext(), v, req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "userID", userID, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// ParseAndValidateQuery parses query parameters and validates them
func ParseAndValidateQuery(c *fiber.Ctx, req any, v *validator.Validate, handlerName string) error {
	userID, _ := GetUserID(c)

	if err := c.QueryParser(req); err != nil {
		logger.L().Warn("failed to parse query params", "handler", handlerName, "userID", userID, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := util.ValidateCtx(c.UserContext(), v, req); err != nil {
		logger.L().Warn("query validation failed", "handler", handlerName, "userID", userID, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// HandleServiceError maps a service error onto the HTTP error vocabulary.
// Any error matching one of notFound becomes a 404 with that error's text,
// so a foreign resource and a missing one answer identically.
func HandleServiceError(err error, handlerName, userID string, notFound ...error) error {
	logFields := []any{"handler", handlerName, "userID", userID, "error", err}

	for _, nf := range notFound {
		if errors.Is(err, nf) {
			logger.L().Info("resource not found", logFields...)
			return httperr.NotFound(nf)
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID):
		logger.L().Info("invalid identifier", logFields...)
		return httperr.Fail(httperr.ErrInvalidID)
	case errors.Is(err, listing.ErrInvalidPage):
		return httperr.InvalidInput(err)
	case errors.Is(err, store.ErrUnavailable), errors.Is(err, store.ErrTransactionsUnsupported):
		logger.L().Error("store unavailable", logFields...)
		return httperr.Fail(httperr.ErrServiceUnavailable)
	}

	logger.L().Error("service operation failed", logFields...)
	return httperr.Fail(httperr.ErrInternal)
}
