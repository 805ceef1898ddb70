package groupapi

import (
	"time"

	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupView is what group listings return: the group plus the caller's
// relationship to it and a live member count.
type GroupView struct {
	ID             primitive.ObjectID `json:"id"`
	OrganizationID primitive.ObjectID `json:"organization_id"`
	Name           string             `json:"name"`
	System         bool               `json:"system"`
	IsGroupAdmin   bool               `json:"is_group_admin"`
	MemberCount    int64              `json:"member_count"`
	CreatedAt      time.Time          `json:"created_at"`
}

// MemberView joins a membership row with the user's profile. Rows whose
// user profile no longer exists are dropped from listings, never
// surfaced as errors.
type MemberView struct {
	UserID   primitive.ObjectID `json:"user_id"`
	FullName string             `json:"full_name"`
	Email    string             `json:"email"`
	Role     models.MemberRole  `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

// MemberPage is one page of a group's member listing plus the caller's
// own resolved role for the group.
type MemberPage struct {
	GroupID     primitive.ObjectID `json:"group_id"`
	VisitorRole models.MemberRole  `json:"visitor_role"`
	Members     []MemberView       `json:"members"`
	Page        int                `json:"page"`
	Size        int                `json:"size"`
	Total       int64              `json:"total"`
}
