package groupapi

import (
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Shared zap field constructors so every log line names ids the same way.

func zapGroup(id primitive.ObjectID) zap.Field { return zap.String("group_id", id.Hex()) }
func zapUser(id primitive.ObjectID) zap.Field  { return zap.String("user_id", id.Hex()) }
func zapActor(id primitive.ObjectID) zap.Field { return zap.String("actor_id", id.Hex()) }

func zapRole(r models.MemberRole) zap.Field { return zap.String("role", string(r)) }
