package groupapi

import (
	"context"
	"errors"

	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// viewFanout caps the concurrent per-group count/role lookups when
// building a listing.
const viewFanout = 8

// ListVisibleGroups returns the groups the caller may see, in the
// store's name order. Org admins see every group in their organization;
// everyone else sees only the groups they belong to. Anonymous callers
// get an empty list without any lookups.
func (s *Service) ListVisibleGroups(ctx context.Context) ([]GroupView, error) {
	if s.ident.IsAnonymous(ctx) {
		return []GroupView{}, nil
	}
	callerID, err := s.ident.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	om, err := s.ident.OrgMembership(ctx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []GroupView{}, nil
	}
	if err != nil {
		return nil, err
	}

	var groups []models.Group
	if om.IsAdmin() {
		groups, err = s.groups.GetByOrg(ctx, om.OrgID)
		if err != nil {
			return nil, err
		}
	} else {
		ids, err := s.members.GroupIDsForUser(ctx, callerID)
		if err != nil {
			return nil, err
		}
		groups, err = s.groups.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	// Each group's count and the caller's role resolve concurrently, but
	// the indexed writes keep the output in the store's sort order no
	// matter which element finishes first.
	views := make([]GroupView, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(viewFanout)
	for i, grp := range groups {
		// Stale membership rows can point at a group from another org
		// (e.g. the user was moved); those never make it into the view.
		if !om.IsAdmin() && grp.OrganizationID != om.OrgID {
			continue
		}
		g.Go(func() error {
			v, err := s.buildGroupView(gctx, grp, callerID, om)
			if err != nil {
				return err
			}
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]GroupView, 0, len(views))
	for _, v := range views {
		if !v.ID.IsZero() {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Service) buildGroupView(ctx context.Context, grp models.Group, callerID primitive.ObjectID, om models.OrgMember) (GroupView, error) {
	count, err := s.members.CountByGroup(ctx, grp.ID)
	if err != nil {
		return GroupView{}, err
	}

	isAdmin := om.IsAdmin()
	if !isAdmin {
		m, err := s.members.GetMember(ctx, grp.ID, callerID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return GroupView{}, err
		}
		isAdmin = m.IsAdmin()
	}

	return GroupView{
		ID:             grp.ID,
		OrganizationID: grp.OrganizationID,
		Name:           grp.Name,
		System:         grp.System,
		IsGroupAdmin:   isAdmin,
		MemberCount:    count,
		CreatedAt:      grp.CreatedAt,
	}, nil
}
