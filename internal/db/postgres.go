package db

import (
  "encoding/json"
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "gorm.io/datatypes"
  "github.com/yungbote/coherence-backend/internal/types"
  "github.com/yungbote/coherence-backend/internal/utils"
  "github.com/yungbote/coherence-backend/internal/logger"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "coherence", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    log.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }
  log.Info("uuid-ossp extension enabled")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.IdentityAnchor{},
    &types.Domain{},
    &types.OpenLoop{},
    &types.Practice{},
    &types.DailyState{},
    &types.PracticeEvent{},
    &types.GuidanceEvent{},
    &types.MeditationSession{},
    &types.EmbodimentEvent{},
    &types.ActionReflection{},
    &types.PersonalizedRule{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  fks := []struct {
    table      string
    constraint string
    column     string
    refTable   string
    onDelete   string
  }{
    {"user_token", "fk_user_token_user_id", "user_id", "user", "CASCADE"},
    {"identity_anchor", "fk_identity_anchor_user_id", "user_id", "user", "CASCADE"},
    {"domain", "fk_domain_user_id", "user_id", "user", "CASCADE"},
    {"open_loop", "fk_open_loop_user_id", "user_id", "user", "CASCADE"},
    {"daily_state", "fk_daily_state_user_id", "user_id", "user", "CASCADE"},
    {"practice_event", "fk_practice_event_user_id", "user_id", "user", "CASCADE"},
    {"guidance_event", "fk_guidance_event_user_id", "user_id", "user", "CASCADE"},
    {"meditation_session", "fk_meditation_session_user_id", "user_id", "user", "CASCADE"},
    {"embodiment_event", "fk_embodiment_event_user_id", "user_id", "user", "CASCADE"},
    {"action_reflection", "fk_action_reflection_user_id", "user_id", "user", "CASCADE"},
    {"personalized_rule", "fk_personalized_rule_user_id", "user_id", "user", "CASCADE"},
    {"practice_event", "fk_practice_event_practice_id", "practice_id", "practice", "CASCADE"},
    {"embodiment_event", "fk_embodiment_event_meditation_session_id", "meditation_session_id", "meditation_session", "CASCADE"},
    {"action_reflection", "fk_action_reflection_guidance_event_id", "guidance_event_id", "guidance_event", "CASCADE"},
  }
  for _, fk := range fks {
    drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, fk.table, fk.constraint)
    if err := s.db.Exec(drop).Error; err != nil {
      return fmt.Errorf("Failed to drop %s: %w", fk.constraint, err)
    }
    add := fmt.Sprintf(`
      ALTER TABLE %q
      ADD CONSTRAINT %q
      FOREIGN KEY (%q)
      REFERENCES %q("id")
      ON DELETE %s
    `, fk.table, fk.constraint, fk.column, fk.refTable, fk.onDelete)
    if err := s.db.Exec(add).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", fk.constraint, err)
    }
  }
  return nil
}

// SeedPractices upserts the fixed practice catalog by name.
func (s *PostgresService) SeedPractices() error {
  s.log.Info("Seeding practice catalog...")
  type seed struct {
    name     string
    kind     string
    duration int
    steps    []string
  }
  seeds := []seed{
    {
      name:     "Coherence Breath",
      kind:     "coherence_breath",
      duration: 180,
      steps: []string{
        "Sit upright and close your eyes.",
        "Breathe in through the nose for five counts.",
        "Breathe out slowly for five counts.",
        "Rest attention in the center of the chest.",
        "Continue for three minutes.",
      },
    },
    {
      name:     "Release and Reset",
      kind:     "release_reset",
      duration: 300,
      steps: []string{
        "Name what you are feeling without judging it.",
        "Locate the feeling in the body.",
        "Breathe into that place and let it soften on the exhale.",
        "Repeat until the charge drops.",
      },
    },
    {
      name:     "Body Activation",
      kind:     "body_activation",
      duration: 240,
      steps: []string{
        "Stand up and shake out the arms and legs.",
        "Do twenty slow squats or a brisk walk.",
        "Finish with three deep breaths, long exhale.",
      },
    },
    {
      name:     "Clarity Drop",
      kind:     "clarity_drop",
      duration: 300,
      steps: []string{
        "Write the single question occupying your mind.",
        "Set a five minute timer and write without stopping.",
        "Underline the one sentence that feels most true.",
      },
    },
  }
  for _, p := range seeds {
    raw, err := json.Marshal(p.steps)
    if err != nil {
      return fmt.Errorf("Failed to marshal practice instructions: %w", err)
    }
    row := types.Practice{
      Name:            p.name,
      Kind:            p.kind,
      DurationSeconds: p.duration,
      Instructions:    datatypes.JSON(raw),
    }
    if err := s.db.Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "name"}},
      DoUpdates: clause.AssignmentColumns([]string{"kind", "duration_seconds", "instructions"}),
    }).Create(&row).Error; err != nil {
      return fmt.Errorf("Failed to seed practice %s: %w", p.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
