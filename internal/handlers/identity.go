package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/coherence-backend/internal/services"
)

type IdentityHandler struct {
  identityService services.IdentityService
}

func NewIdentityHandler(identityService services.IdentityService) *IdentityHandler {
  return &IdentityHandler{identityService: identityService}
}

func (ih *IdentityHandler) GetAnchor(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  anchor, err := ih.identityService.GetAnchor(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "anchor_load_failed", err)
    return
  }
  if anchor == nil {
    RespondError(c, http.StatusNotFound, "anchor_not_found", nil)
    return
  }
  RespondOK(c, gin.H{"anchor": anchor})
}

func (ih *IdentityHandler) UpdateAnchor(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.AnchorUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  anchor, err := ih.identityService.UpdateAnchor(c.Request.Context(), userID, req)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "anchor_update_failed", err)
    return
  }
  RespondOK(c, gin.H{"anchor": anchor})
}

type extractRequest struct {
  Content string `json:"content"`
}

func (ih *IdentityHandler) ExtractIdentity(c *gin.Context) {
  var req extractRequest
  if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  result, err := ih.identityService.ExtractIdentity(c.Request.Context(), req.Content)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "extraction_failed", err)
    return
  }
  RespondOK(c, gin.H{"identity": result})
}

func (ih *IdentityHandler) ExtractVision(c *gin.Context) {
  var req extractRequest
  if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  result, err := ih.identityService.ExtractVision(c.Request.Context(), req.Content)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "extraction_failed", err)
    return
  }
  RespondOK(c, gin.H{"vision": result})
}

func (ih *IdentityHandler) ExtractDomains(c *gin.Context) {
  var req extractRequest
  if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  result, err := ih.identityService.ExtractDomains(c.Request.Context(), req.Content)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "extraction_failed", err)
    return
  }
  RespondOK(c, gin.H{"domains": result})
}

func (ih *IdentityHandler) ExtractLoops(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req extractRequest
  if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  loops, err := ih.identityService.ExtractLoops(c.Request.Context(), userID, req.Content)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "extraction_failed", err)
    return
  }
  RespondOK(c, gin.H{"loops": loops})
}

func (ih *IdentityHandler) CompleteOnboarding(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.OnboardingPayload
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  anchor, err := ih.identityService.CompleteOnboarding(c.Request.Context(), userID, req)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "onboarding_failed", err)
    return
  }
  RespondOK(c, gin.H{"anchor": anchor})
}
