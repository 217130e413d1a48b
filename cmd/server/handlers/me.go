package handlers

import (
	"note-ledger/cmd/server/handlers/handlerutil"

	"github.com/gofiber/fiber/v2"
)

// Me echoes the owner id taken from the bearer token.
// @Summary Get current owner
// @Description Returns the owner id every folder and note is scoped to
// @Tags identity
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.E
// @Router /me [get]
func Me(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user_id": userID,
	})
}
