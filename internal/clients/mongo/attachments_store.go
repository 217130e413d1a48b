package mongo

import (
	"context"
	"errors"
	"io"

	"note-ledger/internal/domain"
	"note-ledger/internal/services/attachments"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// AttachmentsBucket is the GridFS bucket name.
const AttachmentsBucket = "attachments"

// AttachmentsStore keeps attachments in GridFS with the owner in the file
// metadata. It is both the Sink and the Source.
type AttachmentsStore struct {
	bucket  *mongo.GridFSBucket
	baseURL string
}

var (
	_ attachments.Sink   = (*AttachmentsStore)(nil)
	_ attachments.Source = (*AttachmentsStore)(nil)
)

type attachmentMeta struct {
	OwnerID     string `bson:"owner_id"`
	FolderID    string `bson:"folder_id"`
	NoteID      string `bson:"note_id"`
	ContentType string `bson:"content_type,omitempty"`
}

type gridFile struct {
	ID       bson.ObjectID  `bson:"_id"`
	Length   int64          `bson:"length"`
	Filename string         `bson:"filename"`
	Metadata attachmentMeta `bson:"metadata"`
}

// NewAttachmentsStore opens the bucket. Download URLs are baseURL/<file id>.
func NewAttachmentsStore(db *mongo.Database, baseURL string) *AttachmentsStore {
	bucket := db.GridFSBucket(options.GridFSBucket().SetName(AttachmentsBucket))
	return &AttachmentsStore{bucket: bucket, baseURL: baseURL}
}

// Put streams obj.Body into the bucket.
func (s *AttachmentsStore) Put(ctx context.Context, obj attachments.Object) (string, error) {
	meta, err := bson.Marshal(attachmentMeta{
		OwnerID:     obj.OwnerID,
		FolderID:    obj.FolderID,
		NoteID:      obj.NoteID,
		ContentType: obj.ContentType,
	})
	if err != nil {
		return "", err
	}

	id, err := s.bucket.UploadFromStream(ctx, obj.Name, obj.Body, options.GridFSUpload().SetMetadata(meta))
	if errors.Is(err, attachments.ErrTooLarge) {
		return "", attachments.ErrTooLarge
	}
	if err != nil {
		return "", translateErr(err)
	}
	return s.baseURL + "/" + id.Hex(), nil
}

// Open looks the file up by id and owner before opening the download stream,
// so a foreign id reads as missing.
func (s *AttachmentsStore) Open(ctx context.Context, ownerID, fileID string) (*attachments.File, io.ReadCloser, error) {
	id, err := domain.ParseID(fileID)
	if err != nil {
		return nil, nil, err
	}

	var gf gridFile
	filter := bson.M{"_id": id, "metadata.owner_id": ownerID}
	if err := s.bucket.GetFilesCollection().FindOne(ctx, filter).Decode(&gf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, attachments.ErrAttachmentNotFound
		}
		return nil, nil, translateErr(err)
	}

	stream, err := s.bucket.OpenDownloadStream(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return nil, nil, attachments.ErrAttachmentNotFound
		}
		return nil, nil, translateErr(err)
	}

	return &attachments.File{
		ID:          gf.ID.Hex(),
		Name:        gf.Filename,
		ContentType: gf.Metadata.ContentType,
		Size:        gf.Length,
	}, stream, nil
}
