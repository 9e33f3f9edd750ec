package repos

import (
  "context"
  "testing"

  "github.com/yungbote/coherence-backend/internal/repos/testutil"
  "github.com/yungbote/coherence-backend/internal/types"
)

func TestDailyStateFindOrCreateForDateIsIdempotent(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  userRepo := NewUserRepo(db, log)
  repo := NewDailyStateRepo(db, log)
  ctx := context.Background()

  user := newTestUser(t)
  if _, err := userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }

  first, err := repo.FindOrCreateForDate(ctx, tx, &types.DailyState{
    UserID:     user.ID,
    Date:       "2026-08-31",
    Physical:   "good",
    Mental:     "yes",
    Emotional:  "nothing",
    GateStatus: "open",
  })
  if err != nil {
    t.Fatalf("first find-or-create: %v", err)
  }

  second, err := repo.FindOrCreateForDate(ctx, tx, &types.DailyState{
    UserID:     user.ID,
    Date:       "2026-08-31",
    Physical:   "low",
    Mental:     "no",
    Emotional:  "significant",
    GateStatus: "hard_block",
  })
  if err != nil {
    t.Fatalf("second find-or-create: %v", err)
  }

  if first.ID != second.ID {
    t.Fatalf("same day produced two rows: %s vs %s", first.ID, second.ID)
  }
  if second.GateStatus != "open" {
    t.Fatalf("second call overwrote the row: %+v", second)
  }
}

func TestDailyStateGetByUserDateMissing(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  userRepo := NewUserRepo(db, log)
  repo := NewDailyStateRepo(db, log)
  ctx := context.Background()

  user := newTestUser(t)
  if _, err := userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }

  got, err := repo.GetByUserDate(ctx, tx, user.ID, "1999-01-01")
  if err != nil {
    t.Fatalf("get by user date: %v", err)
  }
  if got != nil {
    t.Fatalf("expected nil for missing day, got %+v", got)
  }
}
