package memberstore_test

import (
	"errors"
	"testing"

	memberstore "github.com/mcrowe/grouphub/internal/app/store/members"
	"github.com/mcrowe/grouphub/internal/domain/models"
	"github.com/mcrowe/grouphub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestUpsertAndGetMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	orgID := primitive.NewObjectID()

	err := store.Upsert(ctx, models.GroupMember{
		GroupID: groupID, UserID: userID, OrgID: orgID, Role: models.RoleMember,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	m, err := store.GetMember(ctx, groupID, userID)
	if err != nil {
		t.Fatalf("GetMember: %v", err)
	}
	if m.Role != models.RoleMember || m.OrgID != orgID {
		t.Errorf("round trip mismatch: %+v", m)
	}
	if m.CreatedAt.IsZero() {
		t.Errorf("created_at not set on insert")
	}

	// Upserting the same pair updates in place; no second row, and the
	// original join time survives.
	err = store.Upsert(ctx, models.GroupMember{
		GroupID: groupID, UserID: userID, OrgID: orgID, Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	again, err := store.GetMember(ctx, groupID, userID)
	if err != nil {
		t.Fatalf("GetMember: %v", err)
	}
	if again.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", again.Role, models.RoleAdmin)
	}
	if !again.CreatedAt.Equal(m.CreatedAt) {
		t.Errorf("created_at changed on upsert")
	}
	if n, _ := store.CountByGroup(ctx, groupID); n != 1 {
		t.Errorf("CountByGroup = %d, want 1", n)
	}
}

func TestGetMemberNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetMember(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("GetMember on missing row: error = %v, want ErrNoDocuments", err)
	}
}

func TestListPageJoinOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	orgID := primitive.NewObjectID()
	users := make([]primitive.ObjectID, 5)
	for i := range users {
		users[i] = primitive.NewObjectID()
		err := store.Upsert(ctx, models.GroupMember{
			GroupID: groupID, UserID: users[i], OrgID: orgID, Role: models.RoleMember,
		})
		if err != nil {
			t.Fatalf("Upsert %d: %v", i, err)
		}
	}

	page1, err := store.ListPage(ctx, groupID, 1, 3)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	page2, err := store.ListPage(ctx, groupID, 2, 3)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if len(page1) != 3 || len(page2) != 2 {
		t.Fatalf("page sizes %d/%d, want 3/2", len(page1), len(page2))
	}
	for i, m := range append(page1, page2...) {
		if m.UserID != users[i] {
			t.Errorf("page position %d holds the wrong member", i)
		}
	}

	empty, err := store.ListPage(ctx, groupID, 3, 3)
	if err != nil {
		t.Fatalf("ListPage past end: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("page past end has %d rows", len(empty))
	}
}

func TestListAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	orgID := primitive.NewObjectID()
	adminID := primitive.NewObjectID()

	for _, m := range []models.GroupMember{
		{GroupID: groupID, UserID: adminID, OrgID: orgID, Role: models.RoleAdmin},
		{GroupID: groupID, UserID: primitive.NewObjectID(), OrgID: orgID, Role: models.RoleMember},
		{GroupID: groupID, UserID: primitive.NewObjectID(), OrgID: orgID, Role: models.RoleMember},
	} {
		if err := store.Upsert(ctx, m); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	admins, err := store.ListAdmins(ctx, groupID)
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("got %d admins, want 1", len(admins))
	}
	if admins[0].UserID != adminID {
		t.Errorf("wrong admin row returned")
	}
}

func TestGroupIDsForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	orgID := primitive.NewObjectID()
	g1 := primitive.NewObjectID()
	g2 := primitive.NewObjectID()

	for _, m := range []models.GroupMember{
		{GroupID: g1, UserID: userID, OrgID: orgID, Role: models.RoleMember},
		{GroupID: g2, UserID: userID, OrgID: orgID, Role: models.RoleAdmin},
		{GroupID: g1, UserID: primitive.NewObjectID(), OrgID: orgID, Role: models.RoleMember},
	} {
		if err := store.Upsert(ctx, m); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	ids, err := store.GroupIDsForUser(ctx, userID)
	if err != nil {
		t.Fatalf("GroupIDsForUser: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d group ids, want 2", len(ids))
	}
	found := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[g1] || !found[g2] {
		t.Errorf("group ids missing: %v", ids)
	}
}

func TestUpdateRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	err := store.Upsert(ctx, models.GroupMember{
		GroupID: groupID, UserID: userID, OrgID: primitive.NewObjectID(), Role: models.RoleMember,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := store.UpdateRole(ctx, groupID, userID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	m, err := store.GetMember(ctx, groupID, userID)
	if err != nil {
		t.Fatalf("GetMember: %v", err)
	}
	if m.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", m.Role, models.RoleAdmin)
	}

	err = store.UpdateRole(ctx, groupID, primitive.NewObjectID(), models.RoleAdmin)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("UpdateRole on missing row: error = %v, want ErrNoDocuments", err)
	}
}

func TestRemoveAndDeleteByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	orgID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	for _, m := range []models.GroupMember{
		{GroupID: groupID, UserID: userID, OrgID: orgID, Role: models.RoleMember},
		{GroupID: groupID, UserID: primitive.NewObjectID(), OrgID: orgID, Role: models.RoleMember},
		{GroupID: groupID, UserID: primitive.NewObjectID(), OrgID: orgID, Role: models.RoleAdmin},
	} {
		if err := store.Upsert(ctx, m); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	if err := store.Remove(ctx, groupID, userID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.GetMember(ctx, groupID, userID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("row still present after Remove")
	}
	// Removing a row that is already gone is not an error.
	if err := store.Remove(ctx, groupID, userID); err != nil {
		t.Errorf("second Remove: %v", err)
	}

	deleted, err := store.DeleteByGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("DeleteByGroup: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteByGroup removed %d rows, want 2", deleted)
	}
	if n, _ := store.CountByGroup(ctx, groupID); n != 0 {
		t.Errorf("CountByGroup after cascade = %d, want 0", n)
	}
}
