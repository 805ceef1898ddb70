// Package identity resolves the current caller from the request context
// and loads their organization membership.
//
// It is the session/identity collaborator of the group API: the core
// never touches cookies or sessions, only this provider. Org membership
// is fetched fresh on every request (never cached across requests) so a
// role change or org removal takes effect immediately.
package identity

import (
	"context"

	"github.com/mcrowe/grouphub/internal/app/store/orgmembers"
	"github.com/mcrowe/grouphub/internal/app/system/auth"
	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider implements groupapi.Identity on top of the session context and
// the org-membership store.
type Provider struct {
	orgMembers *orgmemberstore.Store
}

func NewProvider(orgMembers *orgmemberstore.Store) *Provider {
	return &Provider{orgMembers: orgMembers}
}

// IsAnonymous reports whether no signed-in user is attached to ctx.
func (p *Provider) IsAnonymous(ctx context.Context) bool {
	_, ok := auth.FromContext(ctx)
	return !ok
}

// CallerID returns the signed-in user's id. Anonymous callers and
// corrupt session ids fail closed with NOT_AUTHORIZED.
func (p *Provider) CallerID(ctx context.Context) (primitive.ObjectID, error) {
	u, ok := auth.FromContext(ctx)
	if !ok {
		return primitive.NilObjectID, bizerr.New(bizerr.NotAuthorized)
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return primitive.NilObjectID, bizerr.New(bizerr.NotAuthorized)
	}
	return id, nil
}

// OrgMembership returns the caller's organization membership.
// Passes through mongo.ErrNoDocuments when the caller has no org;
// each operation maps that to its own business error.
func (p *Provider) OrgMembership(ctx context.Context) (models.OrgMember, error) {
	id, err := p.CallerID(ctx)
	if err != nil {
		return models.OrgMember{}, err
	}
	return p.orgMembers.GetForUser(ctx, id)
}
