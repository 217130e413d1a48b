package mongo

import (
	"context"
	"fmt"
	"time"

	"note-ledger/internal/logger"
	"note-ledger/internal/store"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

// Session implements store.Session on top of a MongoDB replica set.
type Session struct {
	client     *mongo.Client
	folders    *FoldersRepo
	notes      *NotesRepo
	events     *EventsRepo
	txnTimeout time.Duration

	// supportsTxn defaults to IsReplicaSet.
	supportsTxn func() bool
}

var _ store.Session = (*Session)(nil)

// NewSession builds the repositories (creating their indexes) and returns
// a session bound to cli.
func NewSession(ctx context.Context, cli *mongo.Client, db *mongo.Database, txnTimeout time.Duration) (*Session, error) {
	if cli == nil || db == nil {
		return nil, ErrNotInitialized
	}

	folders, err := NewFoldersRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	notes, err := NewNotesRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	events, err := NewEventsRepo(ctx, db)
	if err != nil {
		return nil, err
	}

	return &Session{
		client:      cli,
		folders:     folders,
		notes:       notes,
		events:      events,
		txnTimeout:  txnTimeout,
		supportsTxn: IsReplicaSet,
	}, nil
}

func txnOptions() *options.TransactionOptionsBuilder {
	return options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority()).
		SetReadPreference(readpref.Primary())
}

// RunInTransaction runs fn inside one multi-document transaction. Errors from
// fn abort the transaction and are returned unchanged. Nothing is retried.
func (s *Session) RunInTransaction(ctx context.Context, fn store.UnitOfWork) error {
	if !s.supportsTxn() {
		return store.ErrTransactionsUnsupported
	}

	ctx, cancel := WithRepoTimeout(ctx, s.txnTimeout)
	defer cancel()

	sess, err := s.client.StartSession()
	if err != nil {
		return translateErr(fmt.Errorf("start session: %w", err))
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	if err := sess.StartTransaction(txnOptions()); err != nil {
		return translateErr(fmt.Errorf("start transaction: %w", err))
	}

	sctx := mongo.NewSessionContext(ctx, sess)
	if err := fn(sctx, s.Collections()); err != nil {
		s.abort(ctx, sess)
		return err
	}

	if err := sess.CommitTransaction(sctx); err != nil {
		return translateErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *Session) abort(ctx context.Context, sess *mongo.Session) {
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), OpTimeout)
	defer cancel()
	if err := sess.AbortTransaction(actx); err != nil {
		logger.L().Warn("failed to abort transaction", "error", err)
	}
}

// Collections returns the repositories. Outside RunInTransaction they run
// without a session.
func (s *Session) Collections() store.Collections {
	return store.Collections{
		Folders: s.folders,
		Notes:   s.notes,
		Events:  s.events,
	}
}

// Ping checks that the primary is reachable.
func (s *Session) Ping(ctx context.Context) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return translateErr(drv.Ping(ctx, s.client))
}
