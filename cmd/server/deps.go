package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mongo "note-ledger/internal/clients/mongo"
	"note-ledger/internal/config"
	"note-ledger/internal/identity"
	"note-ledger/internal/services/attachments"
	"note-ledger/internal/services/events"
	"note-ledger/internal/services/folders"
	"note-ledger/internal/services/notes"
	"note-ledger/internal/store"
	"note-ledger/internal/store/memstore"

	"github.com/prometheus/client_golang/prometheus"
)

// AttachmentsRoute is the download path for attachments served from GridFS.
const AttachmentsRoute = "/api/v1/attachments"

// deps is the service graph the router exposes.
type deps struct {
	session     store.Session
	hub         *events.Hub
	verifier    *identity.Verifier
	folders     *folders.Service
	notes       *notes.Service
	events      *events.Service
	attachments *attachments.Service
	collectors  []prometheus.Collector
}

// buildDeps picks the store and attachment backends from cfg and wires the
// services on top. The mongo backend expects mongo.Init to have succeeded.
func buildDeps(ctx context.Context, cfg config.Config, log *slog.Logger) (*deps, error) {
	verifier, err := identity.NewVerifier(cfg)
	if err != nil {
		return nil, err
	}

	var base store.Session
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn("using the in-memory store; data is lost on restart")
		base = memstore.New()
	case config.StoreMongo:
		if !mongo.IsReplicaSet() {
			log.Warn("mongo is not a replica set; every mutation will fail")
		}
		sess, err := mongo.NewSession(ctx, mongo.Client(), mongo.DB(), time.Duration(cfg.MongoTxnTimeoutSec)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("mongo session: %w", err)
		}
		base = sess
	default:
		return nil, config.ErrStoreBackendUnsupported
	}
	session := store.Instrument(base)

	hub := events.NewHub(cfg.WSOutboxBuffer)
	eventLog := events.NewLog()
	folderSvc := folders.NewService(session, eventLog, hub, log)
	noteSvc := notes.NewService(session, folderSvc, eventLog, hub, log)

	var (
		sink   attachments.Sink
		source attachments.Source
	)
	switch cfg.AttachmentsBackend {
	case config.AttachmentsGridFS:
		files := mongo.NewAttachmentsStore(mongo.DB(), AttachmentsRoute)
		sink, source = files, files
	case config.AttachmentsDisk:
		sink = attachments.NewDiskSink(cfg.UploadDir, cfg.UploadURL)
	default:
		return nil, config.ErrAttachmentsUnsupported
	}
	maxBytes := int64(cfg.MaxUploadMB) << 20

	collectors := append(session.Collectors(), hub.Collectors()...)

	return &deps{
		session:     session,
		hub:         hub,
		verifier:    verifier,
		folders:     folderSvc,
		notes:       noteSvc,
		events:      events.NewService(session, log),
		attachments: attachments.NewService(noteSvc, sink, source, maxBytes, log),
		collectors:  collectors,
	}, nil
}
