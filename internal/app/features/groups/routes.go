// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /groups. Authentication is
// not enforced here: the service layer decides per operation (an
// anonymous group listing is a valid empty response, everything else
// fails with NOT_AUTHORIZED and renders as 401/403).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// LIST / CREATE
	r.Get("/", h.HandleListGroups)
	r.Post("/", h.HandleCreateGroup)

	// RENAME / DELETE
	r.Put("/{id}", h.HandleRenameGroup)
	r.Delete("/{id}", h.HandleDeleteGroup)

	// MEMBERS
	r.Get("/{id}/members", h.HandleListMembers)
	r.Post("/{id}/members", h.HandleAddMember)
	r.Put("/{id}/members/{userID}", h.HandleUpdateMemberRole)
	r.Delete("/{id}/members/{userID}", h.HandleRemoveMember)

	// SELF-REMOVAL
	r.Post("/{id}/leave", h.HandleLeaveGroup)

	return r
}
