// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"time"

	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_members")}
}

// GetMember returns the membership row for (groupID, userID).
// Returns mongo.ErrNoDocuments when the user is not in the group; the
// resolver converts that to the NotExist sentinel.
func (s *Store) GetMember(ctx context.Context, groupID, userID primitive.ObjectID) (models.GroupMember, error) {
	var m models.GroupMember
	err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "user_id": userID}).Decode(&m)
	if err != nil {
		return models.GroupMember{}, err
	}
	return m, nil
}

// ListPage returns one page of a group's members in join order
// (created_at, then _id for ties). page is 1-based.
func (s *Store) ListPage(ctx context.Context, groupID primitive.ObjectID, page, size int) ([]models.GroupMember, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page-1) * int64(size)).
		SetLimit(int64(size))
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.GroupMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ListAdmins returns every membership row holding the admin role.
func (s *Store) ListAdmins(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMember, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID, "role": models.RoleAdmin})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var admins []models.GroupMember
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// GroupIDsForUser returns the ids of every group the user belongs to.
func (s *Store) GroupIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := s.c.Distinct(ctx, "group_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Upsert inserts the membership row for (m.GroupID, m.UserID) or updates
// its role and org in place. The write is a single atomic upsert; the
// unique (group_id, user_id) index keeps concurrent upserts from
// duplicating rows.
func (s *Store) Upsert(ctx context.Context, m models.GroupMember) error {
	filter := bson.M{"group_id": m.GroupID, "user_id": m.UserID}
	update := bson.M{
		"$set":         bson.M{"role": m.Role, "org_id": m.OrgID},
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// UpdateRole changes an existing member's role. Returns
// mongo.ErrNoDocuments when the membership does not exist.
func (s *Store) UpdateRole(ctx context.Context, groupID, userID primitive.ObjectID, role models.MemberRole) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"group_id": groupID, "user_id": userID},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Remove deletes the membership document for (groupID, userID).
// Removing a membership that does not exist is not an error.
func (s *Store) Remove(ctx context.Context, groupID, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"group_id": groupID, "user_id": userID})
	return err
}

// DeleteByGroup removes all memberships for a group.
// Returns the number of documents deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByGroup returns the number of members in a group.
func (s *Store) CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"group_id": groupID})
}
