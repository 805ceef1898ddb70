// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	groupsfeature "github.com/mcrowe/grouphub/internal/app/features/groups"
	healthfeature "github.com/mcrowe/grouphub/internal/app/features/health"
	"github.com/mcrowe/grouphub/internal/app/groupapi"
	"github.com/mcrowe/grouphub/internal/app/store/audit"
	groupstore "github.com/mcrowe/grouphub/internal/app/store/groups"
	memberstore "github.com/mcrowe/grouphub/internal/app/store/members"
	orgmemberstore "github.com/mcrowe/grouphub/internal/app/store/orgmembers"
	userstore "github.com/mcrowe/grouphub/internal/app/store/users"
	"github.com/mcrowe/grouphub/internal/app/system/auditlog"
	"github.com/mcrowe/grouphub/internal/app/system/auth"
	"github.com/mcrowe/grouphub/internal/app/system/identity"
	"github.com/mcrowe/grouphub/internal/app/system/requestid"
	"github.com/mcrowe/grouphub/internal/app/system/threshold"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. It wires the stores, the group
// service and its collaborators, then mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	// Stores
	groups := groupstore.New(db)
	members := memberstore.New(db)
	orgMembers := orgmemberstore.New(db)
	users := userstore.New(db)
	auditStore := audit.New(db)

	// Collaborators
	ident := identity.NewProvider(orgMembers)
	quota := threshold.NewChecker(groups, appCfg.MaxGroupsPerOrg)
	auditLogger := auditlog.New(auditStore, logger, auditlog.Config{
		Group:      appCfg.AuditLogGroup,
		Membership: appCfg.AuditLogMembership,
	})

	// The group service: every request goes through its authorization
	// context resolution before touching a store.
	svc := groupapi.NewService(groups, members, users, ident, quota, logger)

	r := chi.NewRouter()

	// Request ids first so everything downstream (including audit
	// events) can reference them.
	r.Use(requestid.Middleware)

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Group and membership management
	groupsHandler := groupsfeature.NewHandler(svc, auditLogger, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	return r, nil
}
