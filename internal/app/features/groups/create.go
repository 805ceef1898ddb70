// internal/app/features/groups/create.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mcrowe/grouphub/internal/app/features/errors"
	"github.com/mcrowe/grouphub/internal/app/system/requestid"
	"github.com/mcrowe/grouphub/internal/app/system/timeouts"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

// HandleCreateGroup serves POST /groups. Org admins only; subject to
// the org's group quota. The creator becomes the group's first admin.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.BadRequest(w, "invalid JSON body")
		return
	}
	name := h.cleanName(req.Name)
	if name == "" {
		errors.BadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.API.CreateGroup(ctx, name)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	h.Audit.GroupCreated(ctx, requestid.FromContext(r.Context()),
		actorID(r), g.ID, g.OrganizationID, g.Name)
	errors.WriteJSON(w, http.StatusCreated, g)
}
