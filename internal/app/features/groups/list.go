// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	"github.com/mcrowe/grouphub/internal/app/features/errors"
	"github.com/mcrowe/grouphub/internal/app/system/timeouts"
)

// HandleListGroups serves GET /groups: the groups visible to the
// caller. Anonymous callers get an empty list, org admins every group
// in their organization, everyone else the groups they belong to.
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := h.API.ListVisibleGroups(ctx)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, views)
}
