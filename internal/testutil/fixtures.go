package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/mcrowe/grouphub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user profile.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateOrgMember places a user in an organization with the given role.
func (f *Fixtures) CreateOrgMember(ctx context.Context, orgID, userID primitive.ObjectID, role models.MemberRole) models.OrgMember {
	f.t.Helper()

	m := models.OrgMember{
		ID:        primitive.NewObjectID(),
		OrgID:     orgID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("org_members").InsertOne(ctx, m)
	if err != nil {
		f.t.Fatalf("failed to create test org member: %v", err)
	}

	return m
}

// CreateGroup creates a test group in the given organization.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, orgID primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := f.db.Collection("groups").InsertOne(ctx, group)
	if err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	return group
}

// CreateSystemGroup creates a group flagged as a system group.
func (f *Fixtures) CreateSystemGroup(ctx context.Context, name string, orgID primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		OrganizationID: orgID,
		System:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := f.db.Collection("groups").InsertOne(ctx, group)
	if err != nil {
		f.t.Fatalf("failed to create test system group: %v", err)
	}

	return group
}

// CreateGroupMember creates a membership record linking a user to a group.
func (f *Fixtures) CreateGroupMember(ctx context.Context, groupID, userID, orgID primitive.ObjectID, role models.MemberRole) models.GroupMember {
	f.t.Helper()

	m := models.GroupMember{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		UserID:    userID,
		OrgID:     orgID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("group_members").InsertOne(ctx, m)
	if err != nil {
		f.t.Fatalf("failed to create test group member: %v", err)
	}

	return m
}
