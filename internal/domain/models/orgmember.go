// internal/domain/models/orgmember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgMember records a user's account-level membership in one organization.
// Exactly one live document per user; it is created when the user joins
// the organization and destroyed when they leave. Role changes go through
// a dedicated org-role flow, not through the group API.
type OrgMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID     primitive.ObjectID `bson:"org_id" json:"org_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role      MemberRole         `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsAdmin reports whether the member is an organization admin.
func (m OrgMember) IsAdmin() bool { return m.Role.IsAdmin() }
