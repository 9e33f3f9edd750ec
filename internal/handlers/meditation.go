package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/services"
)

type MeditationHandler struct {
  meditationService services.MeditationService
  extractionService services.ExtractionService
}

func NewMeditationHandler(
  meditationService services.MeditationService,
  extractionService services.ExtractionService,
) *MeditationHandler {
  return &MeditationHandler{
    meditationService: meditationService,
    extractionService: extractionService,
  }
}

func (mh *MeditationHandler) Start(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    DurationSeconds int                 `json:"duration_seconds"`
    BreathPattern   string              `json:"breath_pattern"`
    PreState        *services.GateInput `json:"pre_state"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  session, err := mh.meditationService.Start(c.Request.Context(), userID, req.DurationSeconds, req.BreathPattern, req.PreState)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "meditation_start_failed", err)
    return
  }
  RespondOK(c, gin.H{"session": session})
}

// Complete marks the session done and, when a brain dump is present, runs
// the post-meditation extraction. The extraction is returned for review;
// loops and identity updates are not persisted until the user confirms.
func (mh *MeditationHandler) Complete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  sessionID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_session_id", err)
    return
  }
  var req struct {
    BrainDump string `json:"brain_dump"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  ctx := c.Request.Context()
  session, err := mh.meditationService.Complete(ctx, userID, sessionID, req.BrainDump)
  if err != nil {
    RespondError(c, http.StatusNotFound, "meditation_complete_failed", err)
    return
  }

  extraction, err := mh.extractionService.ExtractPostMeditation(ctx, userID, req.BrainDump)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "extraction_failed", err)
    return
  }
  session, err = mh.meditationService.AttachExtraction(ctx, userID, sessionID, extraction)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "extraction_persist_failed", err)
    return
  }
  RespondOK(c, gin.H{"session": session, "extraction": extraction})
}

func (mh *MeditationHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  sessionID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_session_id", err)
    return
  }
  session, err := mh.meditationService.Get(c.Request.Context(), userID, sessionID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "session_not_found", err)
    return
  }
  RespondOK(c, gin.H{"session": session})
}
