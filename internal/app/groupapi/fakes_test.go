package groupapi_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mcrowe/grouphub/internal/app/groupapi"
	"github.com/mcrowe/grouphub/internal/app/system/bizerr"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory store fakes. They mirror the real stores' contracts,
// including mongo.ErrNoDocuments as the not-found signal, so the
// service under test cannot tell the difference.

type fakeGroups struct {
	mu     sync.Mutex
	groups map[primitive.ObjectID]models.Group

	getByIDCalls int
}

func newFakeGroups(groups ...models.Group) *fakeGroups {
	f := &fakeGroups{groups: make(map[primitive.ObjectID]models.Group)}
	for _, g := range groups {
		f.groups[g.ID] = g
	}
	return f
}

func (f *fakeGroups) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getByIDCalls++
	g, ok := f.groups[id]
	if !ok {
		return models.Group{}, mongo.ErrNoDocuments
	}
	return g, nil
}

func (f *fakeGroups) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Group
	for _, id := range ids {
		if g, ok := f.groups[id]; ok {
			out = append(out, g)
		}
	}
	sortGroups(out)
	return out, nil
}

func (f *fakeGroups) GetByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Group
	for _, g := range f.groups {
		if g.OrganizationID == orgID {
			out = append(out, g)
		}
	}
	sortGroups(out)
	return out, nil
}

func (f *fakeGroups) Create(ctx context.Context, g models.Group) (models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g.ID = primitive.NewObjectID()
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	f.groups[g.ID] = g
	return g, nil
}

func (f *fakeGroups) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	g.Name = name
	f.groups[id] = g
	return nil
}

func (f *fakeGroups) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.groups[id]; !ok {
		return 0, nil
	}
	delete(f.groups, id)
	return 1, nil
}

func (f *fakeGroups) CountByOrg(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, g := range f.groups {
		if g.OrganizationID == orgID {
			n++
		}
	}
	return n, nil
}

func sortGroups(gs []models.Group) {
	sort.Slice(gs, func(i, j int) bool {
		if gs[i].Name != gs[j].Name {
			return gs[i].Name < gs[j].Name
		}
		return gs[i].ID.Hex() < gs[j].ID.Hex()
	})
}

type memberKey struct {
	group primitive.ObjectID
	user  primitive.ObjectID
}

type fakeMembers struct {
	mu      sync.Mutex
	members map[memberKey]models.GroupMember

	getMemberCalls int
}

func newFakeMembers(members ...models.GroupMember) *fakeMembers {
	f := &fakeMembers{members: make(map[memberKey]models.GroupMember)}
	for _, m := range members {
		f.members[memberKey{m.GroupID, m.UserID}] = m
	}
	return f
}

func (f *fakeMembers) GetMember(ctx context.Context, groupID, userID primitive.ObjectID) (models.GroupMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getMemberCalls++
	m, ok := f.members[memberKey{groupID, userID}]
	if !ok {
		return models.GroupMember{}, mongo.ErrNoDocuments
	}
	return m, nil
}

func (f *fakeMembers) ListPage(ctx context.Context, groupID primitive.ObjectID, page, size int) ([]models.GroupMember, error) {
	all := f.byGroup(groupID)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(all) {
		return nil, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeMembers) ListAdmins(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMember, error) {
	var out []models.GroupMember
	for _, m := range f.byGroup(groupID) {
		if m.IsAdmin() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembers) GroupIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []primitive.ObjectID
	for k := range f.members {
		if k.user == userID {
			ids = append(ids, k.group)
		}
	}
	return ids, nil
}

func (f *fakeMembers) Upsert(ctx context.Context, m models.GroupMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := memberKey{m.GroupID, m.UserID}
	if old, ok := f.members[k]; ok {
		m.CreatedAt = old.CreatedAt
	} else if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	f.members[k] = m
	return nil
}

func (f *fakeMembers) UpdateRole(ctx context.Context, groupID, userID primitive.ObjectID, role models.MemberRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := memberKey{groupID, userID}
	m, ok := f.members[k]
	if !ok {
		return mongo.ErrNoDocuments
	}
	m.Role = role
	f.members[k] = m
	return nil
}

func (f *fakeMembers) Remove(ctx context.Context, groupID, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, memberKey{groupID, userID})
	return nil
}

func (f *fakeMembers) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.members {
		if k.group == groupID {
			delete(f.members, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeMembers) CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	return int64(len(f.byGroup(groupID))), nil
}

// byGroup returns a group's members in join order.
func (f *fakeMembers) byGroup(groupID primitive.ObjectID) []models.GroupMember {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.GroupMember
	for k, m := range f.members {
		if k.group == groupID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out
}

type fakeUsers struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[primitive.ObjectID]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// fakeIdentity represents the session layer: either anonymous, or a
// caller id with an optional org membership.
type fakeIdentity struct {
	anonymous bool
	userID    primitive.ObjectID
	orgMember *models.OrgMember
}

func anonymousCaller() *fakeIdentity {
	return &fakeIdentity{anonymous: true}
}

func callerWithOrg(userID, orgID primitive.ObjectID, role models.MemberRole) *fakeIdentity {
	return &fakeIdentity{
		userID: userID,
		orgMember: &models.OrgMember{
			ID:     primitive.NewObjectID(),
			OrgID:  orgID,
			UserID: userID,
			Role:   role,
		},
	}
}

func callerWithoutOrg(userID primitive.ObjectID) *fakeIdentity {
	return &fakeIdentity{userID: userID}
}

func (f *fakeIdentity) IsAnonymous(ctx context.Context) bool { return f.anonymous }

func (f *fakeIdentity) CallerID(ctx context.Context) (primitive.ObjectID, error) {
	if f.anonymous {
		return primitive.NilObjectID, bizerr.New(bizerr.NotAuthorized)
	}
	return f.userID, nil
}

func (f *fakeIdentity) OrgMembership(ctx context.Context) (models.OrgMember, error) {
	if f.anonymous || f.orgMember == nil {
		return models.OrgMember{}, mongo.ErrNoDocuments
	}
	return *f.orgMember, nil
}

// fakeQuota rejects when full is set.
type fakeQuota struct {
	full bool
}

func (f *fakeQuota) CheckGroupQuota(ctx context.Context, om models.OrgMember) error {
	if f.full {
		return bizerr.Newf(bizerr.QuotaExceeded, "organization group limit reached")
	}
	return nil
}

func newTestService(groups *fakeGroups, members *fakeMembers, users *fakeUsers, ident *fakeIdentity) *groupapi.Service {
	return groupapi.NewService(groups, members, users, ident, &fakeQuota{}, nil)
}
