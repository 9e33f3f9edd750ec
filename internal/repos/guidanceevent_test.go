package repos

import (
  "context"
  "testing"
  "time"

  "github.com/yungbote/coherence-backend/internal/repos/testutil"
  "github.com/yungbote/coherence-backend/internal/types"
)

func TestGuidanceEventGetLatestInRange(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  userRepo := NewUserRepo(db, log)
  repo := NewGuidanceEventRepo(db, log)
  ctx := context.Background()

  user := newTestUser(t)
  if _, err := userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }

  older, err := repo.Create(ctx, tx, &types.GuidanceEvent{
    UserID:       user.ID,
    DecisionType: "pause",
    GuidanceText: "Rest today.",
    Confidence:   0.9,
    CreatedAt:    time.Now().Add(-10 * time.Minute),
  })
  if err != nil {
    t.Fatalf("create older event: %v", err)
  }
  newer, err := repo.Create(ctx, tx, &types.GuidanceEvent{
    UserID:       user.ID,
    DecisionType: "next_action",
    GuidanceText: "Ship the draft.",
    Confidence:   0.8,
    CreatedAt:    time.Now(),
  })
  if err != nil {
    t.Fatalf("create newer event: %v", err)
  }

  from := time.Now().Add(-1 * time.Hour)
  to := time.Now().Add(1 * time.Hour)
  got, err := repo.GetLatestInRange(ctx, tx, user.ID, from, to)
  if err != nil {
    t.Fatalf("get latest in range: %v", err)
  }
  if got == nil {
    t.Fatal("expected an event in range")
  }
  if got.ID != newer.ID {
    t.Fatalf("got %s, want the newer event %s (older was %s)", got.ID, newer.ID, older.ID)
  }

  past, err := repo.GetLatestInRange(ctx, tx, user.ID, from.Add(-48*time.Hour), to.Add(-48*time.Hour))
  if err != nil {
    t.Fatalf("get latest in past range: %v", err)
  }
  if past != nil {
    t.Fatalf("expected no event two days back, got %+v", past)
  }
}

func TestGuidanceEventGetRecentByUserID(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)
  userRepo := NewUserRepo(db, log)
  repo := NewGuidanceEventRepo(db, log)
  ctx := context.Background()

  user := newTestUser(t)
  if _, err := userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
    t.Fatalf("create user: %v", err)
  }

  for i := 0; i < 3; i++ {
    if _, err := repo.Create(ctx, tx, &types.GuidanceEvent{
      UserID:       user.ID,
      DecisionType: "pause",
      GuidanceText: "Rest today.",
      Confidence:   0.9,
      CreatedAt:    time.Now().Add(time.Duration(-i) * time.Minute),
    }); err != nil {
      t.Fatalf("create event %d: %v", i, err)
    }
  }

  got, err := repo.GetRecentByUserID(ctx, tx, user.ID, 2)
  if err != nil {
    t.Fatalf("get recent: %v", err)
  }
  if len(got) != 2 {
    t.Fatalf("got %d events, want the 2 newest", len(got))
  }
  if got[0].CreatedAt.Before(got[1].CreatedAt) {
    t.Fatal("expected newest-first ordering")
  }
}
