package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/services"
)

type GuidanceHandler struct {
  guidanceService services.GuidanceService
}

func NewGuidanceHandler(guidanceService services.GuidanceService) *GuidanceHandler {
  return &GuidanceHandler{guidanceService: guidanceService}
}

func (gh *GuidanceHandler) Generate(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.GuidanceRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  event, cached, err := gh.guidanceService.GenerateToday(c.Request.Context(), userID, req)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "guidance_failed", err)
    return
  }
  RespondOK(c, gin.H{"guidance": event, "cached": cached})
}

func (gh *GuidanceHandler) Today(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  event, err := gh.guidanceService.GetToday(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "guidance_load_failed", err)
    return
  }
  if event == nil {
    RespondError(c, http.StatusNotFound, "no_guidance_today", nil)
    return
  }
  RespondOK(c, gin.H{"guidance": event})
}

func (gh *GuidanceHandler) Reflect(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  eventID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_event_id", err)
    return
  }
  var req struct {
    ActionTaken    bool   `json:"action_taken"`
    ReflectionText string `json:"reflection_text"`
    Outcome        string `json:"outcome"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  reflection, err := gh.guidanceService.RecordReflection(c.Request.Context(), userID, eventID, req.ActionTaken, req.ReflectionText, req.Outcome)
  if err != nil {
    RespondError(c, http.StatusNotFound, "reflection_failed", err)
    return
  }
  RespondOK(c, gin.H{"reflection": reflection})
}
