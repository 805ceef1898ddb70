package groupapi

import (
	"context"
	"errors"
	"sync"

	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// AuthContext is the request-scoped authorization state for one
// (caller, group) pair: the group itself, the caller's membership row in
// it (the NotExist sentinel when absent), and the caller's org
// membership. It is recomputed per operation and never cached across
// requests, because roles change between requests.
type AuthContext struct {
	CallerID    primitive.ObjectID
	Group       models.Group
	GroupMember models.GroupMember
	OrgMember   models.OrgMember
}

// CanRead reports whether the caller may view the group: a group member
// of either role, or an org admin.
func (a AuthContext) CanRead() bool {
	return a.GroupMember.IsValid() || a.OrgMember.IsAdmin()
}

// CanManage reports whether the caller may mutate the group or its
// membership: a group admin, or an org admin.
func (a AuthContext) CanManage() bool {
	return a.GroupMember.IsAdmin() || a.OrgMember.IsAdmin()
}

// VisitorRole is the role presented back to the caller in read
// responses: admin when either role is admin, member when the group
// membership merely exists. Callers with no entitlement never reach a
// role value.
func (a AuthContext) VisitorRole() (models.MemberRole, error) {
	switch {
	case a.GroupMember.IsAdmin() || a.OrgMember.IsAdmin():
		return models.RoleAdmin, nil
	case a.GroupMember.IsValid():
		return models.RoleMember, nil
	default:
		return "", bizerr.New(bizerr.NotAuthorized)
	}
}

// resolution memoizes the AuthContext for the lifetime of one logical
// operation, so a handler that needs the context twice (once to
// authorize, once to read the org id) triggers the underlying lookups
// only once. A resolution must never outlive its operation.
type resolution struct {
	svc     *Service
	groupID primitive.ObjectID

	once sync.Once
	ac   AuthContext
	err  error
}

func (s *Service) resolve(groupID primitive.ObjectID) *resolution {
	return &resolution{svc: s, groupID: groupID}
}

func (r *resolution) auth(ctx context.Context) (AuthContext, error) {
	r.once.Do(func() {
		r.ac, r.err = r.svc.resolveAuthContext(ctx, r.groupID)
	})
	return r.ac, r.err
}

// resolveAuthContext issues the two independent lookups concurrently and
// joins them: (a) the caller's membership row in the group, absent rows
// becoming the NotExist sentinel; (b) the caller's org membership plus
// the group record, with the group's organization checked against the
// caller's. The join is a barrier: both sides must complete before the
// context is assembled, so a foreign group is never mistaken for a valid
// one just because the membership lookup finished first.
func (s *Service) resolveAuthContext(ctx context.Context, groupID primitive.ObjectID) (AuthContext, error) {
	callerID, err := s.ident.CallerID(ctx)
	if err != nil {
		return AuthContext{}, err
	}

	var (
		gm    models.GroupMember
		om    models.OrgMember
		group models.Group
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := s.members.GetMember(gctx, groupID, callerID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			gm = models.GroupMemberNotExist
			return nil
		}
		if err != nil {
			return err
		}
		gm = m
		return nil
	})

	g.Go(func() error {
		m, err := s.ident.OrgMembership(gctx)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bizerr.New(bizerr.InvalidGroupID)
		}
		if err != nil {
			return err
		}
		grp, err := s.groups.GetByID(gctx, groupID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bizerr.New(bizerr.InvalidGroupID)
		}
		if err != nil {
			return err
		}
		if grp.OrganizationID != m.OrgID {
			return bizerr.New(bizerr.InvalidGroupID)
		}
		om, group = m, grp
		return nil
	})

	if err := g.Wait(); err != nil {
		return AuthContext{}, err
	}
	return AuthContext{
		CallerID:    callerID,
		Group:       group,
		GroupMember: gm,
		OrgMember:   om,
	}, nil
}
