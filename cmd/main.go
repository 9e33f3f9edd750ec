package main

import (
  "fmt"
  "os"
  "time"
  "github.com/yungbote/coherence-backend/internal/clients/redis"
  "github.com/yungbote/coherence-backend/internal/db"
  "github.com/yungbote/coherence-backend/internal/handlers"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/middleware"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/server"
  "github.com/yungbote/coherence-backend/internal/services"
  "github.com/yungbote/coherence-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  if err = postgresService.SeedPractices(); err != nil {
    log.Warn("Practice seed failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis
  dayCache, err := redis.NewDayCache(log)
  if err != nil {
    log.Warn("Redis day cache unavailable, guidance lookups fall back to postgres", "error", err)
    dayCache = nil
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  anchorRepo := repos.NewIdentityAnchorRepo(thePG, log)
  domainRepo := repos.NewDomainRepo(thePG, log)
  loopRepo := repos.NewOpenLoopRepo(thePG, log)
  practiceRepo := repos.NewPracticeRepo(thePG, log)
  dailyStateRepo := repos.NewDailyStateRepo(thePG, log)
  practiceEventRepo := repos.NewPracticeEventRepo(thePG, log)
  guidanceEventRepo := repos.NewGuidanceEventRepo(thePG, log)
  meditationSessionRepo := repos.NewMeditationSessionRepo(thePG, log)
  embodimentEventRepo := repos.NewEmbodimentEventRepo(thePG, log)
  actionReflectionRepo := repos.NewActionReflectionRepo(thePG, log)
  personalizedRuleRepo := repos.NewPersonalizedRuleRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  aiClient, err := services.NewAIClient(log)
  if err != nil {
    log.Error("Could not init AIClient", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(log, userRepo)
  stateGateService := services.NewStateGateService(log, aiClient)
  extractionService := services.NewExtractionService(log, aiClient, anchorRepo, domainRepo, loopRepo)
  identityService := services.NewIdentityService(log, thePG, aiClient, userRepo, anchorRepo, domainRepo, loopRepo)
  loopService := services.NewLoopService(log, loopRepo, domainRepo)
  checkInService := services.NewCheckInService(log, stateGateService, userRepo, dailyStateRepo, practiceRepo, practiceEventRepo)
  meditationService := services.NewMeditationService(log, meditationSessionRepo)
  embodimentService := services.NewEmbodimentService(log, aiClient, anchorRepo, loopRepo, embodimentEventRepo)
  guidanceService := services.NewGuidanceService(log, aiClient, userRepo, anchorRepo, personalizedRuleRepo, loopRepo, guidanceEventRepo, actionReflectionRepo, dayCache)
  alignmentService := services.NewAlignmentService(log, aiClient, anchorRepo, loopRepo, domainRepo, guidanceEventRepo)
  ritualFlowService := services.NewRitualFlowService(log, userRepo, embodimentEventRepo, meditationService, extractionService, embodimentService, checkInService, guidanceService, loopService, identityService)

  // Handlers
  log.Info("Setting up handlers from main...")
  healthcheckHandler := handlers.NewHealthcheckHandler()
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  identityHandler := handlers.NewIdentityHandler(identityService)
  loopHandler := handlers.NewLoopHandler(loopService)
  checkInHandler := handlers.NewCheckInHandler(checkInService)
  meditationHandler := handlers.NewMeditationHandler(meditationService, extractionService)
  brainDumpHandler := handlers.NewBrainDumpHandler(extractionService, loopService, identityService)
  embodimentHandler := handlers.NewEmbodimentHandler(embodimentService)
  guidanceHandler := handlers.NewGuidanceHandler(guidanceService)
  alignmentHandler := handlers.NewAlignmentHandler(alignmentService)
  ritualHandler := handlers.NewRitualHandler(ritualFlowService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    UserHandler:        userHandler,
    HealthcheckHandler: healthcheckHandler,
    IdentityHandler:    identityHandler,
    LoopHandler:        loopHandler,
    CheckInHandler:     checkInHandler,
    MeditationHandler:  meditationHandler,
    BrainDumpHandler:   brainDumpHandler,
    EmbodimentHandler:  embodimentHandler,
    GuidanceHandler:    guidanceHandler,
    AlignmentHandler:   alignmentHandler,
    RitualHandler:      ritualHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
