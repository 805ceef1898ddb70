// internal/app/features/groups/rename.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mcrowe/grouphub/internal/app/features/errors"
	"github.com/mcrowe/grouphub/internal/app/system/requestid"
	"github.com/mcrowe/grouphub/internal/app/system/timeouts"
)

type renameGroupRequest struct {
	Name string `json:"name"`
}

// HandleRenameGroup serves PUT /groups/{id}. Group admins and org
// admins only.
func (h *Handler) HandleRenameGroup(w http.ResponseWriter, r *http.Request) {
	id, err := groupID(r)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	var req renameGroupRequest
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

	if err := h.API.RenameGroup(ctx, id, name); err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	h.Audit.GroupRenamed(ctx, requestid.FromContext(r.Context()), actorID(r), id, name)
	w.WriteHeader(http.StatusNoContent)
}
