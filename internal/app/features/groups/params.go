// internal/app/features/groups/params.go
package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mcrowe/grouphub/internal/app/system/auth"
	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// groupID extracts and validates the {id} path parameter. A malformed
// id is indistinguishable from a missing group to the caller.
func groupID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, bizerr.New(bizerr.InvalidGroupID)
	}
	return id, nil
}

// pathUserID extracts the {userID} path parameter. ok is false when the
// value is not a well-formed object id.
func pathUserID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// actorID returns the signed-in caller's id for audit records, or the
// zero id when the session carries no usable id.
func actorID(r *http.Request) primitive.ObjectID {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}
