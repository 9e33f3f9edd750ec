package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/coherence-backend/internal/ritual"
  "github.com/yungbote/coherence-backend/internal/services"
)

type RitualHandler struct {
  flowService services.RitualFlowService
}

func NewRitualHandler(flowService services.RitualFlowService) *RitualHandler {
  return &RitualHandler{flowService: flowService}
}

// Enter resolves where today's flow starts from persisted rows.
func (rh *RitualHandler) Enter(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  state, err := rh.flowService.Enter(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "flow_entry_failed", err)
    return
  }
  RespondOK(c, state)
}

func (rh *RitualHandler) Advance(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    Step    ritual.Step          `json:"step"`
    Event   ritual.Event         `json:"event"`
    Payload services.FlowPayload `json:"payload"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  state, err := rh.flowService.Advance(c.Request.Context(), userID, req.Step, req.Event, req.Payload)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "flow_advance_failed", err)
    return
  }
  RespondOK(c, state)
}
