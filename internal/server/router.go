package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/coherence-backend/internal/handlers"
  "github.com/yungbote/coherence-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler        *handlers.AuthHandler
  AuthMiddleware     *middleware.AuthMiddleware
  UserHandler        *handlers.UserHandler
  HealthcheckHandler *handlers.HealthcheckHandler
  IdentityHandler    *handlers.IdentityHandler
  LoopHandler        *handlers.LoopHandler
  CheckInHandler     *handlers.CheckInHandler
  MeditationHandler  *handlers.MeditationHandler
  BrainDumpHandler   *handlers.BrainDumpHandler
  EmbodimentHandler  *handlers.EmbodimentHandler
  GuidanceHandler    *handlers.GuidanceHandler
  AlignmentHandler   *handlers.AlignmentHandler
  RitualHandler      *handlers.RitualHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  protected.PATCH("/user/timezone", cfg.UserHandler.UpdateTimezone)
  // Identity & onboarding
  protected.GET("/identity/anchor", cfg.IdentityHandler.GetAnchor)
  protected.PATCH("/identity/anchor", cfg.IdentityHandler.UpdateAnchor)
  protected.POST("/onboarding/extract/identity", cfg.IdentityHandler.ExtractIdentity)
  protected.POST("/onboarding/extract/vision", cfg.IdentityHandler.ExtractVision)
  protected.POST("/onboarding/extract/domains", cfg.IdentityHandler.ExtractDomains)
  protected.POST("/onboarding/extract/loops", cfg.IdentityHandler.ExtractLoops)
  protected.POST("/onboarding/complete", cfg.IdentityHandler.CompleteOnboarding)
  // Loops
  protected.POST("/loops", cfg.LoopHandler.Create)
  protected.GET("/loops", cfg.LoopHandler.List)
  protected.POST("/loops/:id/close", cfg.LoopHandler.Close)
  // Check-in & practices
  protected.POST("/checkin", cfg.CheckInHandler.CheckIn)
  protected.GET("/checkin/today", cfg.CheckInHandler.Today)
  protected.GET("/practices", cfg.CheckInHandler.ListPractices)
  protected.POST("/practice-events/:id/complete", cfg.CheckInHandler.CompletePractice)
  // Meditation
  protected.POST("/meditation/start", cfg.MeditationHandler.Start)
  protected.POST("/meditation/:id/complete", cfg.MeditationHandler.Complete)
  protected.GET("/meditation/:id", cfg.MeditationHandler.Get)
  // Brain dump
  protected.POST("/brain-dump", cfg.BrainDumpHandler.Extract)
  protected.POST("/brain-dump/confirm", cfg.BrainDumpHandler.Confirm)
  // Embodiment
  protected.POST("/embodiment/generate", cfg.EmbodimentHandler.Generate)
  protected.POST("/embodiment/:id/complete", cfg.EmbodimentHandler.Complete)
  // Guidance
  protected.POST("/guidance", cfg.GuidanceHandler.Generate)
  protected.GET("/guidance/today", cfg.GuidanceHandler.Today)
  protected.POST("/guidance/:id/reflection", cfg.GuidanceHandler.Reflect)
  // Alignment
  protected.GET("/alignment", cfg.AlignmentHandler.Overview)
  protected.POST("/alignment/next-steps", cfg.AlignmentHandler.NextSteps)
  // Ritual flow
  protected.GET("/ritual/enter", cfg.RitualHandler.Enter)
  protected.POST("/ritual/advance", cfg.RitualHandler.Advance)

  return router
}
