// Package threshold enforces per-organization resource quotas.
//
// The group API passes the caller's org membership through the checker
// before creating a group; the checker is the only component that knows
// the configured limits.
package threshold

import (
	"context"

	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupCounter is the slice of the group store the checker needs.
type GroupCounter interface {
	CountByOrg(ctx context.Context, orgID primitive.ObjectID) (int64, error)
}

// Checker validates quota limits against live store counts.
type Checker struct {
	groups    GroupCounter
	maxGroups int64
}

// NewChecker builds a Checker. maxGroups <= 0 disables the group limit.
func NewChecker(groups GroupCounter, maxGroups int64) *Checker {
	return &Checker{groups: groups, maxGroups: maxGroups}
}

// CheckGroupQuota fails with QUOTA_EXCEEDED when the caller's org has
// reached its group-count limit.
func (c *Checker) CheckGroupQuota(ctx context.Context, om models.OrgMember) error {
	if c.maxGroups <= 0 {
		return nil
	}
	n, err := c.groups.CountByOrg(ctx, om.OrgID)
	if err != nil {
		return err
	}
	if n >= c.maxGroups {
		return bizerr.Newf(bizerr.QuotaExceeded, "organization has reached its limit of %d groups", c.maxGroups)
	}
	return nil
}
