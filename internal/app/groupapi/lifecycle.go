package groupapi

import (
	"context"
	"errors"
	"strings"

	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateGroup creates a group in the caller's organization and records
// the caller as its first admin. Only org admins may create groups, and
// creation is subject to the org's group quota.
func (s *Service) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, errors.New("group name must not be empty")
	}

	om, err := s.ident.OrgMembership(ctx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Group{}, bizerr.New(bizerr.NotAuthorized)
	}
	if err != nil {
		return models.Group{}, err
	}
	if !om.IsAdmin() {
		return models.Group{}, bizerr.New(bizerr.NotAuthorized)
	}
	if err := s.quota.CheckGroupQuota(ctx, om); err != nil {
		return models.Group{}, err
	}

	g, err := s.groups.Create(ctx, models.Group{
		OrganizationID: om.OrgID,
		Name:           name,
	})
	if err != nil {
		return models.Group{}, err
	}

	err = s.members.Upsert(ctx, models.GroupMember{
		GroupID: g.ID,
		UserID:  om.UserID,
		OrgID:   om.OrgID,
		Role:    models.RoleAdmin,
	})
	if err != nil {
		return models.Group{}, err
	}

	s.log.Info("group created",
		zapGroup(g.ID), zapActor(om.UserID), zap.String("name", g.Name))
	return g, nil
}

// RenameGroup renames the group. Requires manage access.
func (s *Service) RenameGroup(ctx context.Context, groupID primitive.ObjectID, name string) error {
	ac, err := s.resolve(groupID).auth(ctx)
	if err != nil {
		return err
	}
	if !ac.CanManage() {
		return bizerr.New(bizerr.NotAuthorized)
	}

	if err := s.groups.Rename(ctx, groupID, name); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bizerr.New(bizerr.InvalidGroupID)
		}
		return err
	}
	s.log.Info("group renamed",
		zapGroup(groupID), zapActor(ac.CallerID), zap.String("name", name))
	return nil
}

// DeleteGroup deletes the group and all its memberships. Requires
// manage access. System groups can never be deleted.
func (s *Service) DeleteGroup(ctx context.Context, groupID primitive.ObjectID) error {
	ac, err := s.resolve(groupID).auth(ctx)
	if err != nil {
		return err
	}
	if !ac.CanManage() {
		return bizerr.New(bizerr.NotAuthorized)
	}
	if ac.Group.System {
		return bizerr.New(bizerr.CannotDeleteSystemGroup)
	}

	if _, err := s.groups.Delete(ctx, groupID); err != nil {
		return err
	}
	removed, err := s.members.DeleteByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	s.log.Info("group deleted",
		zapGroup(groupID), zapActor(ac.CallerID),
		zap.Int64("memberships_removed", removed))
	return nil
}
