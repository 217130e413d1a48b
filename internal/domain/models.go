package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Folder is a user-owned container of notes.
type Folder struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id" example:"683cdb8aa96ad71e8e075bd1"`
	OwnerID       string        `bson:"owner_id" json:"owner_id" example:"VbBpXk3w1cTQ0e5Hd7yZ"`
	Name          string        `bson:"name" json:"name" example:"Vacations 2024"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at" example:"2025-06-01T23:00:26.005Z"`
	LastUpdatedAt *time.Time    `bson:"last_updated_at,omitempty" json:"last_updated_at,omitempty" example:"2025-06-02T08:12:44.120Z"`
}

// Note lives in exactly one folder; its owner is the folder's owner.
type Note struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id" example:"683cdb8aa96ad71e8e075bd2"`
	FolderID      bson.ObjectID `bson:"folder_id" json:"folder_id" example:"683cdb8aa96ad71e8e075bd1"`
	Title         string        `bson:"title" json:"title" example:"Packing list"`
	Content       string        `bson:"content" json:"content" example:"Sunscreen, towel, book"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at" example:"2025-06-01T23:00:26.005Z"`
	LastUpdatedAt time.Time     `bson:"last_updated_at" json:"last_updated_at" example:"2025-06-01T23:00:26.005Z"`
}

// Event is an immutable audit record of a folder or note mutation.
type Event struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id" example:"683cdb8aa96ad71e8e075bd3"`
	AggregateID string        `bson:"aggregate_id" json:"aggregate_id" example:"683cdb8aa96ad71e8e075bd2"`
	Type        EventType     `bson:"type" json:"type" example:"NOTE_CREATED"`
	Payload     Payload       `bson:"payload" json:"payload"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at" example:"2025-06-01T23:00:26.007Z"`
}

// FolderPatch holds the folder fields a caller asked to change.
// A nil field is left untouched.
type FolderPatch struct {
	Name *string
}

// Payload returns the submitted fields as an event payload.
func (p FolderPatch) Payload() Payload {
	out := Payload{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	return out
}

// Apply copies the set fields onto f.
func (p FolderPatch) Apply(f *Folder) {
	if p.Name != nil {
		f.Name = *p.Name
	}
}

// NotePatch holds the note fields a caller asked to change.
type NotePatch struct {
	Title   *string
	Content *string
}

// Payload returns the submitted fields as an event payload.
func (p NotePatch) Payload() Payload {
	out := Payload{}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Content != nil {
		out["content"] = *p.Content
	}
	return out
}

// Apply copies the set fields onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
}

// Now returns the current UTC time at the precision the document store keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
