package groupapi

import (
	"context"

	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddMember adds userID to the group with the given role, or updates
// the role if the row already exists. Requires manage access.
func (s *Service) AddMember(ctx context.Context, groupID, userID primitive.ObjectID, roleName string) error {
	role, err := ParseMemberRole(roleName)
	if err != nil {
		return err
	}
	ac, err := s.resolve(groupID).auth(ctx)
	if err != nil {
		return err
	}
	if !ac.CanManage() {
		return bizerr.New(bizerr.NotAuthorized)
	}

	err = s.members.Upsert(ctx, models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		OrgID:   ac.Group.OrganizationID,
		Role:    role,
	})
	if err != nil {
		return err
	}
	s.log.Info("member added",
		zapGroup(groupID), zapUser(userID), zapActor(ac.CallerID),
		zapRole(role))
	return nil
}

// UpdateMemberRole changes an existing member's role. Requires manage
// access. A target with no membership row surfaces the store's
// not-found error, which handlers render as 404.
func (s *Service) UpdateMemberRole(ctx context.Context, groupID, userID primitive.ObjectID, roleName string) error {
	role, err := ParseMemberRole(roleName)
	if err != nil {
		return err
	}
	ac, err := s.resolve(groupID).auth(ctx)
	if err != nil {
		return err
	}
	if !ac.CanManage() {
		return bizerr.New(bizerr.NotAuthorized)
	}

	if err := s.members.UpdateRole(ctx, groupID, userID, role); err != nil {
		return err
	}
	s.log.Info("member role changed",
		zapGroup(groupID), zapUser(userID), zapActor(ac.CallerID),
		zapRole(role))
	return nil
}

// LeaveGroup removes the caller's own membership. The one structural
// guard in self-removal: the sole admin of a group may not leave, so a
// populated group can never be left admin-less this way.
func (s *Service) LeaveGroup(ctx context.Context, groupID primitive.ObjectID) error {
	callerID, err := s.ident.CallerID(ctx)
	if err != nil {
		return err
	}
	admins, err := s.members.ListAdmins(ctx, groupID)
	if err != nil {
		return err
	}
	if len(admins) == 1 && admins[0].UserID == callerID {
		return bizerr.New(bizerr.CannotLeaveGroup)
	}

	if err := s.members.Remove(ctx, groupID, callerID); err != nil {
		return err
	}
	s.log.Info("member left", zapGroup(groupID), zapUser(callerID))
	return nil
}

// RemoveMember removes another user from the group. Requires manage
// access. Self-removal must go through LeaveGroup, which carries the
// sole-admin guard; this path deliberately does not, so an admin may
// remove another admin even when that empties the admin set.
func (s *Service) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	ac, err := s.resolve(groupID).auth(ctx)
	if err != nil {
		return err
	}
	if !ac.CanManage() {
		return bizerr.New(bizerr.NotAuthorized)
	}
	if userID == ac.CallerID {
		return bizerr.New(bizerr.CannotRemoveMyself)
	}

	if err := s.members.Remove(ctx, groupID, userID); err != nil {
		return err
	}
	s.log.Info("member removed",
		zapGroup(groupID), zapUser(userID), zapActor(ac.CallerID))
	return nil
}
