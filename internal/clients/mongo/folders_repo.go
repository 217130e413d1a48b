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

// FoldersRepo implements store.FolderCollection for MongoDB
type FoldersRepo struct {
	collection *mongo.Collection
}

var _ store.FolderCollection = (*FoldersRepo)(nil)

// NewFoldersRepo creates the folders repository and its listing index.
func NewFoldersRepo(ctx context.Context, db *mongo.Database) (*FoldersRepo, error) {
	collection := db.Collection("folders")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "created_at", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("owner_created_asc"),
		},
	}
	if err := ensureIndexes(ctx, collection, indexes); err != nil {
		return nil, err
	}

	return &FoldersRepo{collection: collection}, nil
}

// Insert stores f, assigning an id when it has none.
func (r *FoldersRepo) Insert(ctx context.Context, f *domain.Folder) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	if f.ID.IsZero() {
		f.ID = bson.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, f)
	return translateErr(err)
}

func (r *FoldersRepo) FindOne(ctx context.Context, id bson.ObjectID, ownerID string) (*domain.Folder, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var f domain.Folder
	if err := r.collection.FindOne(ctx, ownedBy(id, ownerID)).Decode(&f); err != nil {
		return nil, translateErr(err)
	}
	return &f, nil
}

func (r *FoldersRepo) Find(ctx context.Context, ownerID string, opts store.FindOptions) ([]*domain.Folder, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	findOpts := options.Find().
		SetSort(sortAsc("created_at")).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)

	cur, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, findOpts)
	if err != nil {
		return nil, translateErr(err)
	}
	defer closeCursor(ctx, cur)

	out := []*domain.Folder{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

// UpdateOne sets the patched fields and last_updated_at. MongoDB reports the
// document as modified only when a stored value actually changed.
func (r *FoldersRepo) UpdateOne(ctx context.Context, id bson.ObjectID, ownerID string, patch domain.FolderPatch, at time.Time) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set := bson.M{"last_updated_at": at}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}

	res, err := r.collection.UpdateOne(ctx, ownedBy(id, ownerID), bson.M{"$set": set})
	if err != nil {
		return 0, translateErr(err)
	}
	return res.ModifiedCount, nil
}

func (r *FoldersRepo) DeleteOne(ctx context.Context, id bson.ObjectID, ownerID string) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, ownedBy(id, ownerID))
	if err != nil {
		return 0, translateErr(err)
	}
	return res.DeletedCount, nil
}
