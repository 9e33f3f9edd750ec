package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/services"
)

type LoopHandler struct {
  loopService services.LoopService
}

func NewLoopHandler(loopService services.LoopService) *LoopHandler {
  return &LoopHandler{loopService: loopService}
}

func (lh *LoopHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.LoopCreate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  loop, err := lh.loopService.Create(c.Request.Context(), userID, req)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "loop_create_failed", err)
    return
  }
  RespondOK(c, gin.H{"loop": loop})
}

func (lh *LoopHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  loops, err := lh.loopService.List(c.Request.Context(), userID, c.Query("status"))
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "loop_list_failed", err)
    return
  }
  RespondOK(c, gin.H{"loops": loops})
}

func (lh *LoopHandler) Close(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  loopID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_loop_id", err)
    return
  }
  loop, err := lh.loopService.Close(c.Request.Context(), userID, loopID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "loop_close_failed", err)
    return
  }
  RespondOK(c, gin.H{"loop": loop})
}
