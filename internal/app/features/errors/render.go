// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/mcrowe/grouphub/internal/app/store/groups"
	"github.com/mcrowe/grouphub/internal/app/system/auth"
	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// apiError is the JSON error body every failing endpoint returns.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, apiError{Code: "BAD_REQUEST", Message: msg})
}

// statusFor maps business error codes to HTTP statuses. The mapping is
// deliberately in one place so handlers never pick statuses themselves.
func statusFor(code bizerr.Code) int {
	switch code {
	case bizerr.NotAuthorized:
		return http.StatusForbidden
	case bizerr.InvalidGroupID:
		return http.StatusNotFound
	case bizerr.InvalidMemberRole:
		return http.StatusBadRequest
	case bizerr.CannotLeaveGroup, bizerr.CannotRemoveMyself, bizerr.CannotDeleteSystemGroup:
		return http.StatusConflict
	case bizerr.QuotaExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Render writes the JSON error response for err.
//
// Business errors keep their code and message. NOT_AUTHORIZED becomes
// 401 for anonymous callers and 403 for signed-in ones. Store-level
// signals (no documents, duplicate name) get their own mappings.
// Anything else is a 500 with the detail logged, not leaked.
func Render(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if code, ok := bizerr.CodeOf(err); ok {
		status := statusFor(code)
		if code == bizerr.NotAuthorized {
			if _, signedIn := auth.CurrentUser(r); !signedIn {
				status = http.StatusUnauthorized
			}
		}
		WriteJSON(w, status, apiError{Code: string(code), Message: err.Error()})
		return
	}

	switch {
	case stderrors.Is(err, mongo.ErrNoDocuments):
		WriteJSON(w, http.StatusNotFound, apiError{Code: "NOT_FOUND", Message: "not found"})
	case stderrors.Is(err, groupstore.ErrDuplicateGroupName):
		WriteJSON(w, http.StatusConflict, apiError{Code: "DUPLICATE_GROUP_NAME", Message: err.Error()})
	default:
		log.Error("request failed", zap.Error(err),
			zap.String("method", r.Method), zap.String("path", r.URL.Path))
		WriteJSON(w, http.StatusInternalServerError, apiError{Code: "INTERNAL", Message: "internal error"})
	}
}
