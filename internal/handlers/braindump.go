package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/coherence-backend/internal/services"
)

type BrainDumpHandler struct {
  extractionService services.ExtractionService
  loopService       services.LoopService
  identityService   services.IdentityService
}

func NewBrainDumpHandler(
  extractionService services.ExtractionService,
  loopService services.LoopService,
  identityService services.IdentityService,
) *BrainDumpHandler {
  return &BrainDumpHandler{
    extractionService: extractionService,
    loopService:       loopService,
    identityService:   identityService,
  }
}

// Extract runs the standalone brain dump extraction. Nothing is persisted
// until the user confirms.
func (bh *BrainDumpHandler) Extract(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    Content string `json:"content"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  extraction, err := bh.extractionService.ExtractBrainDump(c.Request.Context(), userID, req.Content)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "extraction_failed", err)
    return
  }
  RespondOK(c, gin.H{"extraction": extraction})
}

// Confirm persists a user-confirmed extraction: confident loops become open
// loops and the anchor absorbs emotion shifts, releases and vision additions.
func (bh *BrainDumpHandler) Confirm(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.ExtractionResult
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  ctx := c.Request.Context()
  loops, err := bh.loopService.CreateFromExtraction(ctx, userID, "brain_dump", req.Loops)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "loop_persist_failed", err)
    return
  }
  anchor, err := bh.identityService.MergeConfirmedExtraction(ctx, userID, &req)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "anchor_merge_failed", err)
    return
  }
  RespondOK(c, gin.H{"loops": loops, "anchor": anchor})
}
