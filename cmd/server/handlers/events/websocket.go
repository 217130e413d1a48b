package events

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"note-ledger/cmd/server/ctxkeys"
	"note-ledger/cmd/server/handlers/httperr"
	"note-ledger/internal/domain"
	"note-ledger/internal/identity"
	"note-ledger/internal/logger"
	"note-ledger/internal/services/events"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

const (
	// WSClosePolicyViolation represents WebSocket close code for policy violation
	WSClosePolicyViolation = 1008

	wsWriteTimeout     = 10 * time.Second
	wsPingInterval     = 25 * time.Second
	wsPingWriteTimeout = 5 * time.Second

	msgFailedToCloseWebSocketConnection = "failed to close WebSocket connection"
)

var (
	errMissingOwner  = errors.New(ctxkeys.UserIDKey + " not found")
	errMissingParent = errors.New(ctxkeys.ParentCtxKey + " not found")
)

// Hub is the subscription side of the event fan-out
type Hub interface {
	Subscribe(ctx context.Context, connID ulid.ULID, ownerID string) (*events.Subscriber, func())
	Unsubscribe(ctx context.Context, connID ulid.ULID)
}

// WebSocketHandlers streams the caller's committed events
type WebSocketHandlers struct {
	hub           Hub
	verifier      *identity.Verifier
	maxSessionSec int
}

// NewWebSocketHandlers creates new WebSocket handlers
func NewWebSocketHandlers(hub Hub, verifier *identity.Verifier, maxSessionSec int) *WebSocketHandlers {
	return &WebSocketHandlers{
		hub:           hub,
		verifier:      verifier,
		maxSessionSec: maxSessionSec,
	}
}

// WSUpgrade authenticates the ?token= query parameter before the upgrade
func (h *WebSocketHandlers) WSUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		logger.L().Warn("websocket upgrade required", "handler", "WSUpgrade", "path", c.Path())
		return httperr.Fail(httperr.E{
			Status:  fiber.StatusBadRequest,
			Message: "WebSocket upgrade required",
		})
	}

	token := c.Query("token")
	if token == "" {
		logger.L().Warn("missing token in websocket upgrade", "handler", "WSUpgrade", "path", c.Path())
		return httperr.Fail(httperr.E{Status: fiber.StatusUnauthorized, Message: "Missing token"})
	}

	ownerID, err := h.verifier.Verify(token)
	if err != nil {
		logger.L().Warn("invalid token in websocket upgrade", "handler", "WSUpgrade", "path", c.Path(), "error", err)
		return httperr.Fail(httperr.E{Status: fiber.StatusUnauthorized, Message: "Invalid token"})
	}

	c.Locals(ctxkeys.UserIDKey, ownerID)
	c.Locals(ctxkeys.ParentCtxKey, c.UserContext())
	return c.Next()
}

// WSEventsStream pushes every event committed for the caller until the
// client leaves or the session times out
func (h *WebSocketHandlers) WSEventsStream(c *websocket.Conn) {
	conn, parentCtx, err := h.initializeConnection(c)
	if err != nil {
		h.closeConnection(c)
		return
	}

	ctx, cancelCtx := context.WithCancel(parentCtx)
	defer cancelCtx()

	subscriber, cancel := h.hub.Subscribe(ctx, conn.connULID, conn.ownerID)
	defer cancel()

	logger.L().Info("WebSocket connection established", "owner_id", conn.ownerID, "conn_id", conn.connID)

	// the writer owns every write on c; the handler goroutine only reads
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.runWriter(ctx, c, conn, subscriber)
	}()

	h.handleIncomingMessages(c, conn)
	cancelCtx()
	<-writerDone

	logger.L().Info("WebSocket connection closed", "owner_id", conn.ownerID, "conn_id", conn.connID)
}

type wsConnection struct {
	ownerID  string
	connULID ulid.ULID
	connID   string
}

func (h *WebSocketHandlers) initializeConnection(c *websocket.Conn) (*wsConnection, context.Context, error) {
	ownerID, ok := c.Locals(ctxkeys.UserIDKey).(string)
	if !ok || ownerID == "" {
		logger.L().Error(errMissingOwner.Error())
		return nil, nil, errMissingOwner
	}

	parentCtx, ok := c.Locals(ctxkeys.ParentCtxKey).(context.Context)
	if !ok {
		logger.L().Error(errMissingParent.Error())
		return nil, nil, errMissingParent
	}

	connULID := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader)
	return &wsConnection{
		ownerID:  ownerID,
		connULID: connULID,
		connID:   connULID.String(),
	}, parentCtx, nil
}

func (h *WebSocketHandlers) closeConnection(c *websocket.Conn) {
	if err := c.Close(); err != nil {
		logger.L().Error(msgFailedToCloseWebSocketConnection, "error", err)
	}
}

// runWriter pushes events and pings until ctx ends, the subscription is
// dropped, a write fails or the session expires. Unless ctx ended it closes
// c so the reader in WSEventsStream returns too.
func (h *WebSocketHandlers) runWriter(ctx context.Context, c *websocket.Conn, conn *wsConnection, subscriber *events.Subscriber) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("panic in WebSocket writer", "error", r, "owner_id", conn.ownerID)
		}
		if ctx.Err() == nil {
			h.closeConnection(c)
		}
	}()

	session := time.NewTimer(time.Duration(h.maxSessionSec) * time.Second)
	defer session.Stop()
	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case ev, ok := <-subscriber.Ch:
			if !ok {
				return
			}
			if h.sendEvent(c, conn, ev) != nil {
				return
			}
		case <-ping.C:
			if err := h.write(c, websocket.PingMessage, nil, wsPingWriteTimeout); err != nil {
				logger.L().Warn("failed to write ping message", "error", err, "owner_id", conn.ownerID, "conn_id", conn.connID)
				return
			}
		case <-session.C:
			logger.L().Info("WebSocket session timeout", "owner_id", conn.ownerID, "conn_id", conn.connID)
			msg := websocket.FormatCloseMessage(WSClosePolicyViolation, "session timeout")
			if err := h.write(c, websocket.CloseMessage, msg, wsWriteTimeout); err != nil {
				logger.L().Error("failed to send close message", "error", err, "owner_id", conn.ownerID, "conn_id", conn.connID)
			}
			return
		case <-subscriber.Done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandlers) write(c *websocket.Conn, messageType int, data []byte, timeout time.Duration) error {
	if err := c.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return c.WriteMessage(messageType, data)
}

func (h *WebSocketHandlers) sendEvent(c *websocket.Conn, conn *wsConnection, ev domain.Event) error {
	if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		logger.L().Error("failed to set write deadline", "error", err, "owner_id", conn.ownerID, "conn_id", conn.connID)
		return err
	}
	if err := c.WriteJSON(ev); err != nil {
		logger.L().Error("failed to write WebSocket message", "error", err, "owner_id", conn.ownerID, "conn_id", conn.connID)
		return err
	}
	return nil
}

// handleIncomingMessages drains client frames until the connection closes.
func (h *WebSocketHandlers) handleIncomingMessages(c *websocket.Conn, conn *wsConnection) {
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.L().Error("WebSocket error", "error", err, "owner_id", conn.ownerID, "conn_id", conn.connID)
			}
			return
		}
	}
}

// LogWSConnections logs every upgrade attempt with the verified owner, if any.
func LogWSConnections(v *identity.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			owner := ""
			if token := c.Query("token"); token != "" {
				owner, _ = v.Verify(token)
			}
			logger.L().Info("WebSocket upgrade attempt", "ip", c.IP(), "owner_id", owner)
		}
		return c.Next()
	}
}
