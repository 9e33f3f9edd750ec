package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/coherence-backend/internal/services"
)

type AlignmentHandler struct {
  alignmentService services.AlignmentService
}

func NewAlignmentHandler(alignmentService services.AlignmentService) *AlignmentHandler {
  return &AlignmentHandler{alignmentService: alignmentService}
}

func (ah *AlignmentHandler) Overview(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  view, err := ah.alignmentService.Overview(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "alignment_load_failed", err)
    return
  }
  RespondOK(c, view)
}

func (ah *AlignmentHandler) NextSteps(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    ExistingSteps []string `json:"existing_steps"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  steps, err := ah.alignmentService.NextSteps(c.Request.Context(), userID, req.ExistingSteps)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "next_steps_failed", err)
    return
  }
  RespondOK(c, gin.H{"steps": steps})
}
