package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/services"
)

type CheckInHandler struct {
  checkInService services.CheckInService
}

func NewCheckInHandler(checkInService services.CheckInService) *CheckInHandler {
  return &CheckInHandler{checkInService: checkInService}
}

func (ch *CheckInHandler) CheckIn(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    Mental      string `json:"mental"`
    Emotional   string `json:"emotional"`
    Physical    string `json:"physical"`
    ContextDump string `json:"context_dump"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  in := services.GateInput{Mental: req.Mental, Emotional: req.Emotional, Physical: req.Physical}
  result, err := ch.checkInService.CheckIn(c.Request.Context(), userID, in, req.ContextDump)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "check_in_failed", err)
    return
  }
  RespondOK(c, result)
}

func (ch *CheckInHandler) Today(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  state, err := ch.checkInService.Today(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "daily_state_load_failed", err)
    return
  }
  if state == nil {
    RespondError(c, http.StatusNotFound, "no_check_in_today", nil)
    return
  }
  RespondOK(c, gin.H{"daily_state": state})
}

func (ch *CheckInHandler) ListPractices(c *gin.Context) {
  practices, err := ch.checkInService.ListPractices(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "practice_list_failed", err)
    return
  }
  RespondOK(c, gin.H{"practices": practices})
}

func (ch *CheckInHandler) CompletePractice(c *gin.Context) {
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
    PostShift string `json:"post_shift"`
    Skipped   bool   `json:"skipped"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  event, err := ch.checkInService.CompletePractice(c.Request.Context(), userID, eventID, req.PostShift, req.Skipped)
  if err != nil {
    RespondError(c, http.StatusNotFound, "practice_complete_failed", err)
    return
  }
  RespondOK(c, gin.H{"practice_event": event})
}
