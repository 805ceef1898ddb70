// Package groupapi implements authorization-gated group membership
// management: listing the groups a caller may see, listing and mutating
// a group's members, and the group lifecycle itself.
//
// Every operation first resolves an AuthContext (the caller's org role
// and group role, fetched concurrently and joined), branches on the
// derived canRead/canManage predicates, and only then touches the
// stores. Structural invariants (a populated group is never left
// admin-less by self-removal, system groups are never deleted) are
// enforced here, not in storage.
package groupapi

import (
	"context"

	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GroupStore is the slice of the group collection the service needs.
// Lookups signal "no such group" with mongo.ErrNoDocuments.
type GroupStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error)
	GetByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Group, error)
	Create(ctx context.Context, g models.Group) (models.Group, error)
	Rename(ctx context.Context, id primitive.ObjectID, name string) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// MemberStore is the authoritative group-membership join.
type MemberStore interface {
	GetMember(ctx context.Context, groupID, userID primitive.ObjectID) (models.GroupMember, error)
	ListPage(ctx context.Context, groupID primitive.ObjectID, page, size int) ([]models.GroupMember, error)
	ListAdmins(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMember, error)
	GroupIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	Upsert(ctx context.Context, m models.GroupMember) error
	UpdateRole(ctx context.Context, groupID, userID primitive.ObjectID, role models.MemberRole) error
	Remove(ctx context.Context, groupID, userID primitive.ObjectID) error
	DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error)
	CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error)
}

// UserDirectory resolves user profiles for member listings.
type UserDirectory interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
}

// Identity supplies the current caller. Group code never reads sessions
// directly; everything about "who is calling" comes through here.
type Identity interface {
	IsAnonymous(ctx context.Context) bool
	CallerID(ctx context.Context) (primitive.ObjectID, error)
	OrgMembership(ctx context.Context) (models.OrgMember, error)
}

// QuotaChecker enforces per-organization limits before group creation.
type QuotaChecker interface {
	CheckGroupQuota(ctx context.Context, om models.OrgMember) error
}

// Service wires the collaborators together. One instance serves all
// requests; all per-request state lives in the resolution values the
// operations create.
type Service struct {
	groups  GroupStore
	members MemberStore
	users   UserDirectory
	ident   Identity
	quota   QuotaChecker
	log     *zap.Logger
}

func NewService(groups GroupStore, members MemberStore, users UserDirectory, ident Identity, quota QuotaChecker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		groups:  groups,
		members: members,
		users:   users,
		ident:   ident,
		quota:   quota,
		log:     log,
	}
}

// ParseMemberRole maps a request role string onto a known role.
func ParseMemberRole(s string) (models.MemberRole, error) {
	switch models.MemberRole(s) {
	case models.RoleAdmin:
		return models.RoleAdmin, nil
	case models.RoleMember:
		return models.RoleMember, nil
	default:
		return "", bizerr.Newf(bizerr.InvalidMemberRole, "unknown role %q", s)
	}
}
