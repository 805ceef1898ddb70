// internal/app/features/groups/memberops.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mcrowe/grouphub/internal/app/features/errors"
	"github.com/mcrowe/grouphub/internal/app/system/requestid"
	"github.com/mcrowe/grouphub/internal/app/system/timeouts"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// HandleAddMember serves POST /groups/{id}/members. Requires manage
// access; adding an existing member updates their role in place.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	id, err := groupID(r)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.BadRequest(w, "invalid JSON body")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		errors.BadRequest(w, "invalid user_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.AddMember(ctx, id, userID, req.Role); err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	h.Audit.MemberAdded(ctx, requestid.FromContext(r.Context()),
		actorID(r), userID, id, models.MemberRole(req.Role))
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateMemberRole serves PUT /groups/{id}/members/{userID}.
// Requires manage access; the target must already be a member.
func (h *Handler) HandleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	id, err := groupID(r)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}
	userID, ok := pathUserID(r)
	if !ok {
		errors.BadRequest(w, "invalid user id")
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.UpdateMemberRole(ctx, id, userID, req.Role); err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	h.Audit.MemberRoleChanged(ctx, requestid.FromContext(r.Context()),
		actorID(r), userID, id, models.MemberRole(req.Role))
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveMember serves DELETE /groups/{id}/members/{userID}.
// Requires manage access; self-removal must use the leave endpoint.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := groupID(r)
	if err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}
	userID, ok := pathUserID(r)
	if !ok {
		errors.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.RemoveMember(ctx, id, userID); err != nil {
		errors.Render(w, r, h.Log, err)
		return
	}

	h.Audit.MemberRemoved(ctx, requestid.FromContext(r.Context()),
		actorID(r), userID, id)
	w.WriteHeader(http.StatusNoContent)
}
