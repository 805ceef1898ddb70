package groupapi

import (
	"context"

	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// ListMembers returns one page of a group's members joined with user
// profiles, plus the caller's visitor role. Requires read access.
// Members whose user profile is missing (deleted user, dangling row)
// are silently dropped from the page.
func (s *Service) ListMembers(ctx context.Context, groupID primitive.ObjectID, page, size int) (MemberPage, error) {
	res := s.resolve(groupID)
	ac, err := res.auth(ctx)
	if err != nil {
		return MemberPage{}, err
	}
	if !ac.CanRead() {
		return MemberPage{}, bizerr.New(bizerr.NotAuthorized)
	}
	role, err := ac.VisitorRole()
	if err != nil {
		return MemberPage{}, err
	}

	var (
		rows  []models.GroupMember
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.members.ListPage(gctx, groupID, page, size)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.members.CountByGroup(gctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return MemberPage{}, err
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.UserID)
	}
	profiles, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return MemberPage{}, err
	}

	members := make([]MemberView, 0, len(rows))
	for _, m := range rows {
		u, ok := profiles[m.UserID]
		if !ok {
			continue
		}
		members = append(members, MemberView{
			UserID:   m.UserID,
			FullName: u.FullName,
			Email:    u.Email,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		})
	}

	return MemberPage{
		GroupID:     groupID,
		VisitorRole: role,
		Members:     members,
		Page:        page,
		Size:        size,
		Total:       total,
	}, nil
}
