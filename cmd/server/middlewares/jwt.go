package middlewares

import (
	"note-ledger/cmd/server/ctxkeys"
	"note-ledger/cmd/server/handlers/httperr"
	"note-ledger/internal/identity"
	"note-ledger/internal/logger"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWT returns a Fiber middleware that verifies the Bearer token with v and
// stores the owner claim in ctx.Locals(ctxkeys.UserIDKey). Any failure is a 401.
func JWT(v *identity.Verifier) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: v.Algorithm(), Key: v.Key()},
		ContextKey: ctxkeys.TokenKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			token := c.Locals(ctxkeys.TokenKey).(*jwt.Token)
			owner, err := v.OwnerFromClaims(token.Claims)
			if err != nil {
				logger.L().Warn("token without owner claim", "claim", v.Claim(), "path", c.Path())
				return httperr.Fail(httperr.E{Status: fiber.StatusUnauthorized, Message: err.Error()})
			}

			c.Locals(ctxkeys.UserIDKey, owner)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.L().Debug("jwt rejected", "path", c.Path(), "error", err)
			return httperr.Fail(httperr.ErrUnauthorized)
		},
	})
}
