// Package docs NoteLedger API
//
// @title  NoteLedger API
// @version 0.1.0
// @description Folders and notes with an append-only audit trail and live event stream.
// @host      localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package docs

import (
	_ "note-ledger/cmd/server/handlers/httperr"
	_ "note-ledger/internal/domain"
	_ "note-ledger/internal/services/attachments"
	_ "note-ledger/internal/services/events"
	_ "note-ledger/internal/services/folders"
	_ "note-ledger/internal/services/notes"
)
