package models

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

// SurrealDB identifies record ids in its binary protocol with CBOR tag 8,
// encoded as a [table, id] pair. The typed ids below marshal to that form so
// record links in our documents round-trip through the store as real
// references, while JSON marshaling stays a plain string for API responses.

func marshalCBORID(table string, id uuid.UUID) ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{table, id.String()},
	})
}

func unmarshalCBORID(data []byte, expectedTable string, target *uuid.UUID) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR data")
	}
	if majorType := data[0] >> 5; majorType != 6 {
		return fmt.Errorf("expected CBOR tag for record id, got major type %d", majorType)
	}

	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("failed to unmarshal CBOR tag: %w", err)
	}
	if tag.Number != 8 {
		return fmt.Errorf("expected record id tag (8), got %d", tag.Number)
	}

	arr, ok := tag.Content.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("invalid record id: expected [table, id] pair")
	}
	table, ok := arr[0].(string)
	if !ok {
		return fmt.Errorf("invalid record id: table name must be a string")
	}
	if table != expectedTable {
		return fmt.Errorf("record id table mismatch: expected %q, got %q", expectedTable, table)
	}
	s, ok := arr[1].(string)
	if !ok {
		return fmt.Errorf("invalid record id: identifier must be a string")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = id
	return nil
}

func unmarshalJSONID(data []byte, target *uuid.UUID) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = id
	return nil
}

// UserID is a typed id for user records.
type UserID struct {
	uuid uuid.UUID
}

func NewUserID() UserID { return UserID{uuid: uuid.New()} }

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user id: %w", err)
	}
	return UserID{uuid: id}, nil
}

func (u UserID) String() string { return u.uuid.String() }
func (u UserID) IsZero() bool   { return u.uuid == uuid.Nil }

func (u UserID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "users", ID: u.uuid.String()}
}

func (u UserID) MarshalJSON() ([]byte, error)     { return json.Marshal(u.uuid.String()) }
func (u *UserID) UnmarshalJSON(data []byte) error { return unmarshalJSONID(data, &u.uuid) }
func (u UserID) MarshalCBOR() ([]byte, error)     { return marshalCBORID("users", u.uuid) }
func (u *UserID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "users", &u.uuid)
}

// PostID is a typed id for post records. It is distinct from the
// human-readable blog id, which is a plain field on the post document.
type PostID struct {
	uuid uuid.UUID
}

func NewPostID() PostID { return PostID{uuid: uuid.New()} }

func ParsePostID(s string) (PostID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PostID{}, fmt.Errorf("invalid post id: %w", err)
	}
	return PostID{uuid: id}, nil
}

func (p PostID) String() string { return p.uuid.String() }
func (p PostID) IsZero() bool   { return p.uuid == uuid.Nil }

func (p PostID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "posts", ID: p.uuid.String()}
}

func (p PostID) MarshalJSON() ([]byte, error)     { return json.Marshal(p.uuid.String()) }
func (p *PostID) UnmarshalJSON(data []byte) error { return unmarshalJSONID(data, &p.uuid) }
func (p PostID) MarshalCBOR() ([]byte, error)     { return marshalCBORID("posts", p.uuid) }
func (p *PostID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "posts", &p.uuid)
}

// CommentID is a typed id for comment records.
type CommentID struct {
	uuid uuid.UUID
}

func NewCommentID() CommentID { return CommentID{uuid: uuid.New()} }

func ParseCommentID(s string) (CommentID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CommentID{}, fmt.Errorf("invalid comment id: %w", err)
	}
	return CommentID{uuid: id}, nil
}

func (c CommentID) String() string { return c.uuid.String() }
func (c CommentID) IsZero() bool   { return c.uuid == uuid.Nil }

func (c CommentID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "comments", ID: c.uuid.String()}
}

func (c CommentID) MarshalJSON() ([]byte, error)     { return json.Marshal(c.uuid.String()) }
func (c *CommentID) UnmarshalJSON(data []byte) error { return unmarshalJSONID(data, &c.uuid) }
func (c CommentID) MarshalCBOR() ([]byte, error)     { return marshalCBORID("comments", c.uuid) }
func (c *CommentID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "comments", &c.uuid)
}

// NotificationID is a typed id for notification records.
type NotificationID struct {
	uuid uuid.UUID
}

func NewNotificationID() NotificationID { return NotificationID{uuid: uuid.New()} }

func (n NotificationID) String() string { return n.uuid.String() }
func (n NotificationID) IsZero() bool   { return n.uuid == uuid.Nil }

func (n NotificationID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "notifications", ID: n.uuid.String()}
}

func (n NotificationID) MarshalJSON() ([]byte, error)     { return json.Marshal(n.uuid.String()) }
func (n *NotificationID) UnmarshalJSON(data []byte) error { return unmarshalJSONID(data, &n.uuid) }
func (n NotificationID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("notifications", n.uuid)
}
func (n *NotificationID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "notifications", &n.uuid)
}
