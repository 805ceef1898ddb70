// internal/app/features/groups/delete.go
package groups

import (
	"context"
	"net/http"

	"github.com/mcrowe/grouphub/internal/app/features/errors"
	"github.com/mcrowe/grouphub/internal/app/system/requestid"
	"github.com/mcrowe/grouphub/internal/app/system/timeouts"
)

// HandleDeleteGroup serves DELETE /groups/{id}. Deletes the group and
// all its memberships; system groups are refused.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := groupID(r)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	// Long timeout: the delete touches both the group and its memberships.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.API.DeleteGroup(ctx, id); err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	h.Audit.GroupDeleted(ctx, requestid.FromContext(r.Context()), actorID(r), id)
	w.WriteHeader(http.StatusNoContent)
}
