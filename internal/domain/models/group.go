// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a named collection of users inside one organization.
//
// NOTE:
//   - Membership is never embedded on Group; the group_members collection
//     is the single source of truth.
//   - OrganizationID is immutable after creation.
//   - System groups (e.g. the automatic "All Users" group) can never be
//     deleted.
type Group struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	Name           string             `bson:"name" json:"name"`
	NameCI         string             `bson:"name_ci" json:"name_ci"`
	System         bool               `bson:"system" json:"system"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
