package errors_test

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/mcrowe/grouphub/internal/app/features/errors"
	groupstore "github.com/mcrowe/grouphub/internal/app/store/groups"
	"github.com/mcrowe/grouphub/internal/app/system/auth"
	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func signedInRequest() *http.Request {
	return auth.WithTestUser(httptest.NewRequest("GET", "/groups", nil),
		&auth.SessionUser{ID: "66f0c0ffee0000000000abcd", Name: "Avery Chen"})
}

func TestRenderBusinessCodes(t *testing.T) {
	tests := []struct {
		code bizerr.Code
		want int
	}{
		{bizerr.NotAuthorized, http.StatusForbidden},
		{bizerr.InvalidGroupID, http.StatusNotFound},
		{bizerr.InvalidMemberRole, http.StatusBadRequest},
		{bizerr.CannotLeaveGroup, http.StatusConflict},
		{bizerr.CannotRemoveMyself, http.StatusConflict},
		{bizerr.CannotDeleteSystemGroup, http.StatusConflict},
		{bizerr.QuotaExceeded, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			apierrors.Render(rec, signedInRequest(), zap.NewNop(), bizerr.New(tt.code))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if body := rec.Body.String(); !containsCode(body, string(tt.code)) {
				t.Errorf("body %q missing code %s", body, tt.code)
			}
		})
	}
}

func TestRenderNotAuthorizedAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	apierrors.Render(rec, httptest.NewRequest("GET", "/groups", nil), zap.NewNop(),
		bizerr.New(bizerr.NotAuthorized))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous NOT_AUTHORIZED status = %d, want 401", rec.Code)
	}
}

func TestRenderStoreSignals(t *testing.T) {
	rec := httptest.NewRecorder()
	apierrors.Render(rec, signedInRequest(), zap.NewNop(), mongo.ErrNoDocuments)
	if rec.Code != http.StatusNotFound {
		t.Errorf("ErrNoDocuments status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	apierrors.Render(rec, signedInRequest(), zap.NewNop(), groupstore.ErrDuplicateGroupName)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate name status = %d, want 409", rec.Code)
	}
}

func TestRenderUnknownErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	apierrors.Render(rec, signedInRequest(), zap.NewNop(), stderrors.New("socket reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if containsCode(body, "socket reset by peer") {
		t.Errorf("internal detail leaked to the client: %q", body)
	}
	if !containsCode(body, "INTERNAL") {
		t.Errorf("body %q missing INTERNAL code", body)
	}
}

func containsCode(body, code string) bool {
	return strings.Contains(body, code)
}
