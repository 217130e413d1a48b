// Package ctxkeys names the fiber Locals shared by middlewares and handlers.
package ctxkeys

const (
	// UserIDKey holds the owner id resolved from the bearer token.
	UserIDKey = "userID"
	// ParentCtxKey carries the request context into a websocket handler.
	ParentCtxKey = "parentCtx"
	// TokenKey is where the jwt middleware stores the parsed token.
	TokenKey = "user"
)
