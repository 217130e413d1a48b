package mongo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"note-ledger/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrNotInitialized is returned by Shutdown when Init never produced a client.
	ErrNotInitialized = errors.New("mongo client not initialized")
	// ErrShutdown is returned by Shutdown after the first call.
	ErrShutdown = errors.New("mongo client already shut down")
)

const connectTimeout = 10 * time.Second

var (
	drv driver = mongoDriver{}

	client  *mongo.Client
	db      *mongo.Database
	initErr error
	mu      sync.RWMutex

	initOnce     sync.Once
	shutdownOnce sync.Once
	txnProbeOnce sync.Once
)

// Init connects to MongoDB once per process. Every call returns the outcome of
// the first one, including its error. On failure client and db are nil.
func Init(ctx context.Context, cfg config.Config, log *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	initOnce.Do(func() {
		opts := options.Client().
			ApplyURI(cfg.MongoURI).
			SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
			SetConnectTimeout(connectTimeout).
			SetAppName("note-ledger")

		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		cli, err := drv.Connect(ctx, opts)
		if err != nil {
			log.Error("failed to connect to mongo", "err", err)
			initErr = err
			return
		}

		if err := drv.Ping(ctx, cli); err != nil {
			log.Error("failed to ping mongo", "err", err)
			if derr := drv.Disconnect(ctx, cli); derr != nil {
				log.Warn("failed to disconnect after ping failure", "err", derr)
			}
			initErr = err
			return
		}

		probeReplicaSet(ctx, cli, log)

		mu.Lock()
		client = cli
		db = cli.Database(cfg.MongoDBName)
		mu.Unlock()

		log.Info("successfully connected to mongo", "db", cfg.MongoDBName, "replica_set", IsReplicaSet())
	})

	mu.RLock()
	defer mu.RUnlock()
	return client, db, initErr
}

// Client returns the process-wide client, or nil before a successful Init.
func Client() *mongo.Client {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// DB returns the process-wide database handle, or nil before a successful Init.
func DB() *mongo.Database {
	mu.RLock()
	defer mu.RUnlock()
	return db
}

// Shutdown disconnects the client. Only the first call does any work.
func Shutdown(ctx context.Context) error {
	err := ErrShutdown
	shutdownOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		if client == nil {
			err = ErrNotInitialized
			return
		}

		ctx, cancel := context.WithTimeout(ctx, OpTimeout)
		defer cancel()

		err = drv.Disconnect(ctx, client)
		client = nil
		db = nil
	})
	return err
}
