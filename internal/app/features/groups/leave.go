// internal/app/features/groups/leave.go
package groups

import (
	"context"
	"net/http"

	"github.com/mcrowe/grouphub/internal/app/features/errors"
	"github.com/mcrowe/grouphub/internal/app/system/requestid"
	"github.com/mcrowe/grouphub/internal/app/system/timeouts"
)

// HandleLeaveGroup serves POST /groups/{id}/leave: the caller removes
// their own membership. The sole admin of a group cannot leave it.
func (h *Handler) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	id, err := groupID(r)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.LeaveGroup(ctx, id); err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	h.Audit.MemberLeft(ctx, requestid.FromContext(r.Context()), actorID(r), id)
	w.WriteHeader(http.StatusNoContent)
}
