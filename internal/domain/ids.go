package domain

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrInvalidID is returned when an identifier is not a valid store id.
var ErrInvalidID = errors.New("invalid identifier")

// ParseID converts a hex string into an ObjectID.
func ParseID(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}
