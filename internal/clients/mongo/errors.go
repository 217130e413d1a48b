package mongo

import (
	"context"
	"errors"
	"fmt"

	"note-ledger/internal/store"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// translateErr maps driver failures onto the store error vocabulary.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case errors.Is(err, context.Canceled):
		return err
	case isUnavailable(err):
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	default:
		return err
	}
}

func isUnavailable(err error) bool {
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mongo.ErrClientDisconnected)
}
