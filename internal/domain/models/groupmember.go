// internal/domain/models/groupmember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupMember is the authoritative join between users and groups.
// Exactly one document per (group_id, user_id); role is "admin" | "member".
type GroupMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID `bson:"group_id" json:"group_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	OrgID     primitive.ObjectID `bson:"org_id" json:"org_id"`
	Role      MemberRole         `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// GroupMemberNotExist is the sentinel returned when a user has no
// membership row for a group. IsValid and IsAdmin are false on it, so
// authorization predicates never need a presence branch.
var GroupMemberNotExist = GroupMember{Role: RoleNotExist}

// IsValid reports whether this is a real membership (not the sentinel).
func (m GroupMember) IsValid() bool { return m.Role.Known() }

// IsAdmin reports whether the member holds the group admin role.
func (m GroupMember) IsAdmin() bool { return m.Role.IsAdmin() }
