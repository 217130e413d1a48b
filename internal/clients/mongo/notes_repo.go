package mongo

import (
	"context"
	"time"

	"note-ledger/internal/domain"
	"note-ledger/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NotesRepo implements store.NoteCollection for MongoDB
type NotesRepo struct {
	collection *mongo.Collection
}

var _ store.NoteCollection = (*NotesRepo)(nil)

// NewNotesRepo creates the notes repository and its listing index.
func NewNotesRepo(ctx context.Context, db *mongo.Database) (*NotesRepo, error) {
	collection := db.Collection("notes")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "folder_id", Value: 1},
				{Key: "last_updated_at", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("folder_updated_asc"),
		},
	}
	if err := ensureIndexes(ctx, collection, indexes); err != nil {
		return nil, err
	}

	return &NotesRepo{collection: collection}, nil
}

func (r *NotesRepo) Insert(ctx context.Context, n *domain.Note) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, n)
	return translateErr(err)
}

func (r *NotesRepo) FindOne(ctx context.Context, id, folderID bson.ObjectID) (*domain.Note, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var n domain.Note
	if err := r.collection.FindOne(ctx, inFolder(id, folderID)).Decode(&n); err != nil {
		return nil, translateErr(err)
	}
	return &n, nil
}

func (r *NotesRepo) Find(ctx context.Context, folderID bson.ObjectID, opts store.FindOptions) ([]*domain.Note, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	findOpts := options.Find().
		SetSort(sortAsc("last_updated_at")).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)

	cur, err := r.collection.Find(ctx, bson.M{"folder_id": folderID}, findOpts)
	if err != nil {
		return nil, translateErr(err)
	}
	defer closeCursor(ctx, cur)

	out := []*domain.Note{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

// UpdateOne only sets the fields present in patch, plus last_updated_at.
func (r *NotesRepo) UpdateOne(ctx context.Context, id, folderID bson.ObjectID, patch domain.NotePatch, at time.Time) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set := bson.M{"last_updated_at": at}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}

	res, err := r.collection.UpdateOne(ctx, inFolder(id, folderID), bson.M{"$set": set})
	if err != nil {
		return 0, translateErr(err)
	}
	return res.ModifiedCount, nil
}

func (r *NotesRepo) DeleteOne(ctx context.Context, id, folderID bson.ObjectID) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, inFolder(id, folderID))
	if err != nil {
		return 0, translateErr(err)
	}
	return res.DeletedCount, nil
}
