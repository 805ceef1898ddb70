// internal/domain/models/roles.go
package models

// MemberRole is the role a user holds inside an organization or a group.
// The same two-value scale is used at both levels; org-level admins get
// implicit admin rights on every group in their organization.
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"

	// RoleNotExist marks the sentinel GroupMember used when no membership
	// row is found, so predicate methods stay total (no nil checks at
	// call sites).
	RoleNotExist MemberRole = "not_exist"
)

// IsAdmin reports whether the role is the admin role.
func (r MemberRole) IsAdmin() bool { return r == RoleAdmin }

// Known reports whether the role is one of the two assignable roles.
func (r MemberRole) Known() bool { return r == RoleAdmin || r == RoleMember }
