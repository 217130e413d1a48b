package mongo

import (
	"context"
	"errors"
	"fmt"

	"note-ledger/internal/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Server codes for an index that exists with other options or another name.
const (
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

func ensureIndexes(parentCtx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(parentCtx, OpTimeout)
	defer cancel()

	name := coll.Name()
	for _, model := range models {
		_, err := coll.Indexes().CreateOne(ctx, model)
		if err == nil {
			continue
		}
		var se mongo.ServerError
		if errors.As(err, &se) && (se.HasErrorCode(codeIndexOptionsConflict) || se.HasErrorCode(codeIndexKeySpecsConflict)) {
			logger.L().Debug("index already exists, continuing", "collection", name)
			continue
		}
		logger.L().Error("failed to create index", "collection", name, "error", err)
		return fmt.Errorf("failed to create %s collection index: %w", name, translateErr(err))
	}
	return nil
}

func closeCursor(ctx context.Context, cur *mongo.Cursor) {
	if err := cur.Close(ctx); err != nil {
		logger.L().Error("failed to close cursor", "error", err)
	}
}
