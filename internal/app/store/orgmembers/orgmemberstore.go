// internal/app/store/orgmembers/orgmemberstore.go
package orgmemberstore

import (
	"context"
	"errors"
	"time"

	"github.com/mcrowe/grouphub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateOrgMember = errors.New("user already belongs to an organization")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("org_members")}
}

// GetForUser returns the user's one live organization membership.
// Returns mongo.ErrNoDocuments when the user belongs to no organization.
func (s *Store) GetForUser(ctx context.Context, userID primitive.ObjectID) (models.OrgMember, error) {
	var m models.OrgMember
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&m); err != nil {
		return models.OrgMember{}, err
	}
	return m, nil
}

// Add creates the membership row for (m.OrgID, m.UserID). The unique
// user_id index enforces one organization per user.
func (s *Store) Add(ctx context.Context, m models.OrgMember) (models.OrgMember, error) {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.OrgMember{}, ErrDuplicateOrgMember
		}
		return models.OrgMember{}, err
	}
	return m, nil
}

// Remove deletes the user's membership in the given organization.
func (s *Store) Remove(ctx context.Context, orgID, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"org_id": orgID, "user_id": userID})
	return err
}

// CountByOrg returns the number of members in an organization.
func (s *Store) CountByOrg(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"org_id": orgID})
}
