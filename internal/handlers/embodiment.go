package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/services"
)

type EmbodimentHandler struct {
  embodimentService services.EmbodimentService
}

func NewEmbodimentHandler(embodimentService services.EmbodimentService) *EmbodimentHandler {
  return &EmbodimentHandler{embodimentService: embodimentService}
}

func (eh *EmbodimentHandler) Generate(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    SessionID  *uuid.UUID                 `json:"session_id"`
    Extraction *services.ExtractionResult `json:"extraction"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  event, err := eh.embodimentService.Generate(c.Request.Context(), userID, req.SessionID, req.Extraction)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "embodiment_generate_failed", err)
    return
  }
  RespondOK(c, gin.H{"embodiment": event})
}

func (eh *EmbodimentHandler) Complete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  eventID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_event_id", err)
    return
  }
  var req services.EmbodimentCompletion
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  event, err := eh.embodimentService.Complete(c.Request.Context(), userID, eventID, req)
  if err != nil {
    RespondError(c, http.StatusNotFound, "embodiment_complete_failed", err)
    return
  }
  RespondOK(c, gin.H{"embodiment": event})
}
