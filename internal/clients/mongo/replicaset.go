package mongo

import (
	"context"
	"log/slog"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// false = stand-alone, true = replica set or sharded cluster
var isReplicaSet atomic.Bool

// IsReplicaSet reports whether the deployment can run multi-document
// transactions. The value is probed once at Init.
func IsReplicaSet() bool { return isReplicaSet.Load() }

func probeReplicaSet(ctx context.Context, cli *mongo.Client, log *slog.Logger) {
	txnProbeOnce.Do(func() {
		reply, err := drv.Hello(ctx, cli)
		if err != nil {
			log.Warn("replica set probe failed, transactions disabled", "err", err)
			isReplicaSet.Store(false)
			return
		}
		ok := reply.SetName != "" || reply.Msg == "isdbgrid"
		isReplicaSet.Store(ok)
		if !ok {
			log.Warn("mongo is running stand-alone, mutations will be rejected")
		}
	})
}
