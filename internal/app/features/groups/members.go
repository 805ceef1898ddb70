// internal/app/features/groups/members.go
package groups

import (
	"context"
	"net/http"

	"github.com/mcrowe/grouphub/internal/app/features/errors"
	"github.com/mcrowe/grouphub/internal/app/system/paging"
	"github.com/mcrowe/grouphub/internal/app/system/timeouts"
)

// HandleListMembers serves GET /groups/{id}/members?page=&size=.
// Requires read access to the group. Members whose user profile no
// longer exists are omitted from the page.
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := groupID(r)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}
	page := paging.ParsePage(r)
	size := paging.ParseSize(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	result, err := h.API.ListMembers(ctx, id, page, size)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, result)
}
