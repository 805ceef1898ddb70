// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"

	"github.com/mcrowe/grouphub/internal/app/store/audit"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Group controls logging for group lifecycle events (create, rename, delete).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Group string
	// Membership controls logging for membership events (add, remove, role change, leave).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Membership string
}

// Logger records audit events to MongoDB (via audit.Store) and to
// structured logs (via zap), per category configuration.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.SubjectID != nil {
		fields = append(fields, zap.String("subject_id", event.SubjectID.Hex()))
	}
	if event.GroupID != nil {
		fields = append(fields, zap.String("group_id", event.GroupID.Hex()))
	}
	if event.OrganizationID != nil {
		fields = append(fields, zap.String("organization_id", event.OrganizationID.Hex()))
	}
	if event.Detail != "" {
		fields = append(fields, zap.String("detail", event.Detail))
	}
	l.zapLog.Info("audit event", fields...)
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryGroup:
		setting = l.config.Group
	case audit.CategoryMembership:
		setting = l.config.Membership
	default:
		setting = "all" // Default to logging everything for unknown categories
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Insert(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Group Lifecycle Events ---

// GroupCreated logs creation of a group.
func (l *Logger) GroupCreated(ctx context.Context, requestID string, actorID, groupID, orgID primitive.ObjectID, name string) {
	l.Log(ctx, audit.Event{
		Category:       audit.CategoryGroup,
		EventType:      audit.EventGroupCreated,
		RequestID:      requestID,
		ActorID:        &actorID,
		GroupID:        &groupID,
		OrganizationID: &orgID,
		Detail:         name,
	})
}

// GroupRenamed logs a group rename; detail carries the new name.
func (l *Logger) GroupRenamed(ctx context.Context, requestID string, actorID, groupID primitive.ObjectID, newName string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryGroup,
		EventType: audit.EventGroupRenamed,
		RequestID: requestID,
		ActorID:   &actorID,
		GroupID:   &groupID,
		Detail:    newName,
	})
}

// GroupDeleted logs deletion of a group.
func (l *Logger) GroupDeleted(ctx context.Context, requestID string, actorID, groupID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryGroup,
		EventType: audit.EventGroupDeleted,
		RequestID: requestID,
		ActorID:   &actorID,
		GroupID:   &groupID,
	})
}

// --- Membership Events ---

// MemberAdded logs a user being added to a group.
func (l *Logger) MemberAdded(ctx context.Context, requestID string, actorID, subjectID, groupID primitive.ObjectID, role models.MemberRole) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: audit.EventMemberAdded,
		RequestID: requestID,
		ActorID:   &actorID,
		SubjectID: &subjectID,
		GroupID:   &groupID,
		Detail:    string(role),
	})
}

// MemberRoleChanged logs a role change; detail carries the new role.
func (l *Logger) MemberRoleChanged(ctx context.Context, requestID string, actorID, subjectID, groupID primitive.ObjectID, role models.MemberRole) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: audit.EventMemberRoleChanged,
		RequestID: requestID,
		ActorID:   &actorID,
		SubjectID: &subjectID,
		GroupID:   &groupID,
		Detail:    string(role),
	})
}

// MemberRemoved logs a user being removed from a group by a manager.
func (l *Logger) MemberRemoved(ctx context.Context, requestID string, actorID, subjectID, groupID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: audit.EventMemberRemoved,
		RequestID: requestID,
		ActorID:   &actorID,
		SubjectID: &subjectID,
		GroupID:   &groupID,
	})
}

// MemberLeft logs a user leaving a group on their own.
func (l *Logger) MemberLeft(ctx context.Context, requestID string, userID, groupID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: audit.EventMemberLeft,
		RequestID: requestID,
		ActorID:   &userID,
		SubjectID: &userID,
		GroupID:   &groupID,
	})
}
