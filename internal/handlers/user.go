package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/coherence-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  user, err := uh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusNotFound, "user_not_found", err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) UpdateTimezone(c *gin.Context) {
  var req struct {
    Timezone string `json:"timezone"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  user, err := uh.userService.UpdateTimezone(c.Request.Context(), req.Timezone)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_failed", err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}
