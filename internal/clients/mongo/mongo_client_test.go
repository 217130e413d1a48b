package mongo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"note-ledger/internal/config"
	"note-ledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	msgClientShouldBeNil = "client should be nil on connection failure"
	msgDBShouldBeNil     = "db should be nil on connection failure"
	MongoTestURI         = "mongodb://invalid/?connectTimeoutMS=1&serverSelectionTimeoutMS=1"
)

// stubDriver implements the driver interface for testing
type stubDriver struct {
	hello    helloReply
	helloErr error
}

func (stubDriver) Connect(_ context.Context, _ *options.ClientOptions) (*mongo.Client, error) {
	return nil, context.DeadlineExceeded // fail immediately to avoid retry delays
}

func (stubDriver) Ping(_ context.Context, _ *mongo.Client) error {
	return context.DeadlineExceeded
}

func (s stubDriver) Hello(_ context.Context, _ *mongo.Client) (helloReply, error) {
	return s.hello, s.helloErr
}

func (stubDriver) Disconnect(_ context.Context, _ *mongo.Client) error { return nil }

// withStubDriver temporarily replaces the global driver with a stub for testing
func withStubDriver(t *testing.T, d stubDriver) {
	t.Helper()
	old := drv
	drv = d
	reset()
	t.Cleanup(func() {
		drv = old
		reset()
	})
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.Config {
	return config.Config{
		MongoURI:    MongoTestURI,
		MongoDBName: "test",
		LogLevel:    "error",
		LogFormat:   "json",
	}
}

func TestMongoClientIdempotency(t *testing.T) {
	withStubDriver(t, stubDriver{})
	ctx := context.Background()

	client1, db1, err1 := Init(ctx, testConfig(), silentLogger())
	client2, db2, err2 := Init(ctx, testConfig(), silentLogger())

	assert.Nil(t, client1, msgClientShouldBeNil)
	assert.Nil(t, db1, msgDBShouldBeNil)
	assert.Nil(t, client2, msgClientShouldBeNil)
	assert.Nil(t, db2, msgDBShouldBeNil)
	assert.Error(t, err1)
	assert.Equal(t, err1, err2)
}

func TestMongoClientConcurrency(t *testing.T) {
	withStubDriver(t, stubDriver{})
	ctx := context.Background()

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)
	clients := make([]*mongo.Client, goroutines)

	wg.Add(goroutines)
	for i := range goroutines {
		go func(index int) {
			defer wg.Done()
			clients[index], _, errs[index] = Init(ctx, testConfig(), silentLogger())
		}(i)
	}
	wg.Wait()

	for i := range goroutines {
		assert.Nil(t, clients[i])
		assert.Error(t, errs[i])
	}
	assert.Nil(t, Client())
	assert.Nil(t, DB())
}

func TestMongoClientShutdownIdempotency(t *testing.T) {
	withStubDriver(t, stubDriver{})
	ctx := context.Background()

	_, _, err := Init(ctx, testConfig(), silentLogger())
	require.Error(t, err)

	err1 := Shutdown(ctx) // client was never up
	err2 := Shutdown(ctx) // already shut down
	err3 := Shutdown(ctx) // idem

	assert.ErrorIs(t, err1, ErrNotInitialized)
	assert.ErrorIs(t, err2, ErrShutdown)
	assert.ErrorIs(t, err3, ErrShutdown)
}

func TestProbeReplicaSet(t *testing.T) {
	tests := []struct {
		name string
		drv  stubDriver
		want bool
	}{
		{"replica set", stubDriver{hello: helloReply{SetName: "rs0"}}, true},
		{"mongos", stubDriver{hello: helloReply{Msg: "isdbgrid"}}, true},
		{"standalone", stubDriver{}, false},
		{"hello fails", stubDriver{helloErr: errors.New("boom")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withStubDriver(t, tt.drv)
			isReplicaSet.Store(!tt.want)

			probeReplicaSet(context.Background(), nil, silentLogger())
			assert.Equal(t, tt.want, IsReplicaSet())
		})
	}
}

func TestNewSessionRequiresClient(t *testing.T) {
	_, err := NewSession(context.Background(), nil, nil, time.Second)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRunInTransactionRejectsStandalone(t *testing.T) {
	s := &Session{supportsTxn: func() bool { return false }}
	called := false
	err := s.RunInTransaction(context.Background(), func(context.Context, store.Collections) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, store.ErrTransactionsUnsupported)
	assert.False(t, called)
}

func TestTranslateErr(t *testing.T) {
	assert.NoError(t, translateErr(nil))
	assert.ErrorIs(t, translateErr(mongo.ErrNoDocuments), store.ErrNotFound)
	assert.ErrorIs(t, translateErr(context.DeadlineExceeded), store.ErrUnavailable)
	assert.ErrorIs(t, translateErr(mongo.ErrClientDisconnected), store.ErrUnavailable)

	canceled := translateErr(context.Canceled)
	assert.ErrorIs(t, canceled, context.Canceled)
	assert.NotErrorIs(t, canceled, store.ErrUnavailable)

	other := errors.New("write conflict")
	assert.Equal(t, other, translateErr(other))
}

func TestWithRepoTimeout(t *testing.T) {
	t.Run("adds deadline", func(t *testing.T) {
		ctx, cancel := WithRepoTimeout(context.Background(), time.Minute)
		defer cancel()
		dl, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), dl, time.Second)
	})

	t.Run("keeps sooner deadline", func(t *testing.T) {
		parent, pcancel := context.WithTimeout(context.Background(), time.Second)
		defer pcancel()
		ctx, cancel := WithRepoTimeout(parent, time.Minute)
		defer cancel()
		assert.Equal(t, parent, ctx)
	})

	t.Run("done parent passes through", func(t *testing.T) {
		parent, pcancel := context.WithCancel(context.Background())
		pcancel()
		ctx, cancel := WithRepoTimeout(parent, time.Minute)
		defer cancel()
		assert.Equal(t, parent, ctx)
	})
}

// reset clears the singleton without going through Shutdown.
func reset() {
	mu.Lock()
	client = nil
	db = nil
	initErr = nil
	mu.Unlock()

	initOnce = sync.Once{}
	shutdownOnce = sync.Once{}
	txnProbeOnce = sync.Once{}
}
