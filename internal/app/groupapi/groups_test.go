package groupapi_test

import (
	"context"
	"testing"
	"time"

	"github.com/mcrowe/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListVisibleGroupsAnonymous(t *testing.T) {
	ctx := context.Background()
	groups := newFakeGroups(models.Group{
		ID:             primitive.NewObjectID(),
		OrganizationID: primitive.NewObjectID(),
		Name:           "Engineering",
	})
	members := newFakeMembers()

	svc := newTestService(groups, members, newFakeUsers(), anonymousCaller())

	views, err := svc.ListVisibleGroups(ctx)
	if err != nil {
		t.Fatalf("ListVisibleGroups: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("anonymous caller got %d groups, want 0", len(views))
	}
	if groups.getByIDCalls != 0 || members.getMemberCalls != 0 {
		t.Errorf("anonymous listing triggered store lookups")
	}
}

func TestListVisibleGroupsWithoutOrg(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(
		newFakeGroups(),
		newFakeMembers(),
		newFakeUsers(),
		callerWithoutOrg(primitive.NewObjectID()),
	)

	views, err := svc.ListVisibleGroups(ctx)
	if err != nil {
		t.Fatalf("ListVisibleGroups: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("caller without org got %d groups, want 0", len(views))
	}
}

func TestListVisibleGroupsOrgAdminSeesAll(t *testing.T) {
	ctx := context.Background()
	orgID := primitive.NewObjectID()
	adminID := primitive.NewObjectID()

	g1 := models.Group{ID: primitive.NewObjectID(), OrganizationID: orgID, Name: "Alpha"}
	g2 := models.Group{ID: primitive.NewObjectID(), OrganizationID: orgID, Name: "Beta"}
	other := models.Group{ID: primitive.NewObjectID(), OrganizationID: primitive.NewObjectID(), Name: "Elsewhere"}

	members := newFakeMembers(
		models.GroupMember{ID: primitive.NewObjectID(), GroupID: g1.ID, UserID: primitive.NewObjectID(), OrgID: orgID, Role: models.RoleAdmin},
		models.GroupMember{ID: primitive.NewObjectID(), GroupID: g1.ID, UserID: primitive.NewObjectID(), OrgID: orgID, Role: models.RoleMember},
	)

	svc := newTestService(
		newFakeGroups(g1, g2, other),
		members,
		newFakeUsers(),
		callerWithOrg(adminID, orgID, models.RoleAdmin),
	)

	views, err := svc.ListVisibleGroups(ctx)
	if err != nil {
		t.Fatalf("ListVisibleGroups: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("org admin got %d groups, want 2", len(views))
	}
	if views[0].Name != "Alpha" || views[1].Name != "Beta" {
		t.Errorf("listing out of order: %q, %q", views[0].Name, views[1].Name)
	}
	for _, v := range views {
		if !v.IsGroupAdmin {
			t.Errorf("org admin not flagged as admin of %q", v.Name)
		}
	}
	if views[0].MemberCount != 2 {
		t.Errorf("member count for %q = %d, want 2", views[0].Name, views[0].MemberCount)
	}
	if views[1].MemberCount != 0 {
		t.Errorf("member count for %q = %d, want 0", views[1].Name, views[1].MemberCount)
	}
}

func TestListVisibleGroupsMemberSeesOwn(t *testing.T) {
	ctx := context.Background()
	orgID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	mine := models.Group{ID: primitive.NewObjectID(), OrganizationID: orgID, Name: "Mine"}
	led := models.Group{ID: primitive.NewObjectID(), OrganizationID: orgID, Name: "Led by me"}
	foreign := models.Group{ID: primitive.NewObjectID(), OrganizationID: orgID, Name: "Not mine"}

	now := time.Now().UTC()
	members := newFakeMembers(
		models.GroupMember{ID: primitive.NewObjectID(), GroupID: mine.ID, UserID: userID, OrgID: orgID, Role: models.RoleMember, CreatedAt: now},
		models.GroupMember{ID: primitive.NewObjectID(), GroupID: led.ID, UserID: userID, OrgID: orgID, Role: models.RoleAdmin, CreatedAt: now},
		models.GroupMember{ID: primitive.NewObjectID(), GroupID: foreign.ID, UserID: primitive.NewObjectID(), OrgID: orgID, Role: models.RoleAdmin, CreatedAt: now},
	)

	svc := newTestService(
		newFakeGroups(mine, led, foreign),
		members,
		newFakeUsers(),
		callerWithOrg(userID, orgID, models.RoleMember),
	)

	views, err := svc.ListVisibleGroups(ctx)
	if err != nil {
		t.Fatalf("ListVisibleGroups: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("member got %d groups, want 2", len(views))
	}

	byName := make(map[string]bool, len(views))
	for _, v := range views {
		byName[v.Name] = v.IsGroupAdmin
	}
	if _, ok := byName["Not mine"]; ok {
		t.Errorf("listing includes a group the caller does not belong to")
	}
	if byName["Mine"] {
		t.Errorf("plain membership flagged as admin")
	}
	if !byName["Led by me"] {
		t.Errorf("group admin role not reflected in listing")
	}
}

func TestListVisibleGroupsSkipsStaleForeignMembership(t *testing.T) {
	ctx := context.Background()
	orgID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	current := models.Group{ID: primitive.NewObjectID(), OrganizationID: orgID, Name: "Current"}
	// A leftover membership row from before the user changed orgs.
	stale := models.Group{ID: primitive.NewObjectID(), OrganizationID: primitive.NewObjectID(), Name: "Stale"}

	members := newFakeMembers(
		models.GroupMember{ID: primitive.NewObjectID(), GroupID: current.ID, UserID: userID, OrgID: orgID, Role: models.RoleMember},
		models.GroupMember{ID: primitive.NewObjectID(), GroupID: stale.ID, UserID: userID, OrgID: stale.OrganizationID, Role: models.RoleMember},
	)

	svc := newTestService(
		newFakeGroups(current, stale),
		members,
		newFakeUsers(),
		callerWithOrg(userID, orgID, models.RoleMember),
	)

	views, err := svc.ListVisibleGroups(ctx)
	if err != nil {
		t.Fatalf("ListVisibleGroups: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d groups, want 1", len(views))
	}
	if views[0].Name != "Current" {
		t.Errorf("got group %q, want %q", views[0].Name, "Current")
	}
}
