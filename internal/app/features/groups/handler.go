// internal/app/features/groups/handler.go
package groups

import (
	"context"

	"github.com/mcrowe/grouphub/internal/app/groupapi"
	"github.com/mcrowe/grouphub/internal/app/system/auditlog"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GroupAPI is the slice of the group service the handlers need. The
// handlers depend on the interface so tests can swap in a fake.
type GroupAPI interface {
	ListVisibleGroups(ctx context.Context) ([]groupapi.GroupView, error)
	ListMembers(ctx context.Context, groupID primitive.ObjectID, page, size int) (groupapi.MemberPage, error)
	AddMember(ctx context.Context, groupID, userID primitive.ObjectID, roleName string) error
	UpdateMemberRole(ctx context.Context, groupID, userID primitive.ObjectID, roleName string) error
	LeaveGroup(ctx context.Context, groupID primitive.ObjectID) error
	RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error
	CreateGroup(ctx context.Context, name string) (models.Group, error)
	RenameGroup(ctx context.Context, groupID primitive.ObjectID, name string) error
	DeleteGroup(ctx context.Context, groupID primitive.ObjectID) error
}

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	API      GroupAPI
	Audit    *auditlog.Logger
	Log      *zap.Logger
	sanitize *bluemonday.Policy
}

// NewHandler constructs a groups Handler. It is typically called from
// the bootstrap BuildHandler function, where the service, audit logger
// and zap logger are already initialized.
func NewHandler(api GroupAPI, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Audit:    audit,
		Log:      logger,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// cleanName strips any markup from a caller-supplied group name before
// it reaches the service layer.
func (h *Handler) cleanName(name string) string {
	return h.sanitize.Sanitize(name)
}
