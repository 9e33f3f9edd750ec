package repos

import (
  "context"
  "testing"

  "github.com/yungbote/coherence-backend/internal/repos/testutil"
  "github.com/yungbote/coherence-backend/internal/types"
)

func TestDomainFindOrCreateByName(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  userRepo := NewUserRepo(db, log)
  repo := NewDomainRepo(db, log)
  ctx := context.Background()

  user := newTestUser(t)
  if _, err := userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }

  first, err := repo.FindOrCreateByName(ctx, tx, user.ID, "Business")
  if err != nil {
    t.Fatalf("first find-or-create: %v", err)
  }
  second, err := repo.FindOrCreateByName(ctx, tx, user.ID, "Business")
  if err != nil {
    t.Fatalf("second find-or-create: %v", err)
  }
  if first.ID != second.ID {
    t.Fatalf("same name produced two domains: %s vs %s", first.ID, second.ID)
  }

  other, err := repo.FindOrCreateByName(ctx, tx, user.ID, "Health")
  if err != nil {
    t.Fatalf("create second domain: %v", err)
  }
  if other.ID == first.ID {
    t.Fatal("distinct names should produce distinct domains")
  }

  all, err := repo.GetByUserID(ctx, tx, user.ID)
  if err != nil {
    t.Fatalf("list domains: %v", err)
  }
  if len(all) != 2 {
    t.Fatalf("listed %d domains, want 2", len(all))
  }
}
