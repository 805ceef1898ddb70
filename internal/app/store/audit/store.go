// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryGroup      = "group"
	CategoryMembership = "membership"
)

// Group lifecycle event types
const (
	EventGroupCreated = "group_created"
	EventGroupRenamed = "group_renamed"
	EventGroupDeleted = "group_deleted"
)

// Membership event types
const (
	EventMemberAdded       = "member_added"
	EventMemberRemoved     = "member_removed"
	EventMemberRoleChanged = "member_role_changed"
	EventMemberLeft        = "member_left"
)

// Event is one audit record. ActorID is the caller who performed the
// action; SubjectID is the user acted upon (empty for pure group events).
type Event struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	Category       string              `bson:"category"`
	EventType      string              `bson:"event_type"`
	RequestID      string              `bson:"request_id,omitempty"`
	ActorID        *primitive.ObjectID `bson:"actor_id,omitempty"`
	SubjectID      *primitive.ObjectID `bson:"subject_id,omitempty"`
	GroupID        *primitive.ObjectID `bson:"group_id,omitempty"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty"`
	Detail         string              `bson:"detail,omitempty"`
	CreatedAt      time.Time           `bson:"created_at"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Insert writes one audit event. The created timestamp is set here so
// callers never have to remember it.
func (s *Store) Insert(ctx context.Context, ev Event) error {
	ev.ID = primitive.NewObjectID()
	ev.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, ev)
	return err
}

// ListRecentByGroup returns the newest events for a group, newest first.
func (s *Store) ListRecentByGroup(ctx context.Context, groupID primitive.ObjectID, limit int64) ([]Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
