package mongo

import (
	"context"

	"note-ledger/internal/domain"
	"note-ledger/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EventsRepo implements store.EventCollection for MongoDB. It never updates
// or deletes.
type EventsRepo struct {
	collection *mongo.Collection
}

var _ store.EventCollection = (*EventsRepo)(nil)

func NewEventsRepo(ctx context.Context, db *mongo.Database) (*EventsRepo, error) {
	collection := db.Collection("events")

	indexes := []mongo.IndexModel{
		{
			Keys:    sortDesc("created_at"),
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys: bson.D{
				{Key: "aggregate_id", Value: 1},
				{Key: "created_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("aggregate_created_desc"),
		},
	}
	if err := ensureIndexes(ctx, collection, indexes); err != nil {
		return nil, err
	}

	return &EventsRepo{collection: collection}, nil
}

func (r *EventsRepo) Insert(ctx context.Context, ev *domain.Event) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	if ev.ID.IsZero() {
		ev.ID = bson.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, ev)
	return translateErr(err)
}

func (r *EventsRepo) Find(ctx context.Context, filter store.EventFilter, opts store.FindOptions) ([]*domain.Event, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	q := bson.M{}
	if filter.AggregateID != "" {
		q["aggregate_id"] = filter.AggregateID
	}

	findOpts := options.Find().
		SetSort(sortDesc("created_at")).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)

	cur, err := r.collection.Find(ctx, q, findOpts)
	if err != nil {
		return nil, translateErr(err)
	}
	defer closeCursor(ctx, cur)

	out := []*domain.Event{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}
