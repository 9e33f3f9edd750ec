package repos

import (
  "context"
  "fmt"
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/repos/testutil"
  "github.com/yungbote/coherence-backend/internal/types"
)

func newTestUser(tb testing.TB) *types.User {
  tb.Helper()
  return &types.User{
    ID:        uuid.New(),
    Email:     fmt.Sprintf("user-%s@example.com", uuid.New().String()[:8]),
    FirstName: "test",
    LastName:  "user",
    Password:  "hashed",
    Timezone:  "UTC",
  }
}

func TestUserRepoCreateAndFetch(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  repo := NewUserRepo(db, testutil.Logger(t))
  ctx := context.Background()

  user := newTestUser(t)
  if _, err := repo.Create(ctx, tx, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }

  byID, err := repo.GetByIDs(ctx, tx, []uuid.UUID{user.ID})
  if err != nil {
    t.Fatalf("get by id: %v", err)
  }
  if len(byID) != 1 || byID[0].Email != user.Email {
    t.Fatalf("get by id returned %+v", byID)
  }

  byEmail, err := repo.GetByEmails(ctx, tx, []string{user.Email})
  if err != nil {
    t.Fatalf("get by email: %v", err)
  }
  if len(byEmail) != 1 || byEmail[0].ID != user.ID {
    t.Fatalf("get by email returned %+v", byEmail)
  }
}

func TestUserRepoEmailExists(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  repo := NewUserRepo(db, testutil.Logger(t))
  ctx := context.Background()

  user := newTestUser(t)
  if _, err := repo.Create(ctx, tx, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }

  exists, err := repo.EmailExists(ctx, tx, user.Email)
  if err != nil {
    t.Fatalf("email exists: %v", err)
  }
  if !exists {
    t.Fatal("expected email to exist")
  }

  exists, err = repo.EmailExists(ctx, tx, "nobody@example.com")
  if err != nil {
    t.Fatalf("email exists: %v", err)
  }
  if exists {
    t.Fatal("expected email to be free")
  }
}

func TestUserRepoUpdateFields(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  repo := NewUserRepo(db, testutil.Logger(t))
  ctx := context.Background()

  user := newTestUser(t)
  if _, err := repo.Create(ctx, tx, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }
  if err := repo.UpdateFields(ctx, tx, user.ID, map[string]interface{}{
    "timezone":             "America/New_York",
    "onboarding_completed": true,
  }); err != nil {
    t.Fatalf("update fields: %v", err)
  }

  got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{user.ID})
  if err != nil {
    t.Fatalf("get by id: %v", err)
  }
  if got[0].Timezone != "America/New_York" || !got[0].OnboardingCompleted {
    t.Fatalf("update not applied: %+v", got[0])
  }
}
