package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/requestdata"
  "github.com/yungbote/coherence-backend/internal/types"
)

type UserService interface {
  GetMe(ctx context.Context) (*types.User, error)
  UpdateTimezone(ctx context.Context, timezone string) (*types.User, error)
}

type userService struct {
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{
    log:      serviceLog,
    userRepo: userRepo,
  }
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("request data not set in context")
  }
  found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("error fetching user: %w", err)
  }
  if len(found) == 0 || found[0] == nil {
    return nil, fmt.Errorf("user does not exist")
  }
  return found[0], nil
}

func (us *userService) UpdateTimezone(ctx context.Context, timezone string) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("request data not set in context")
  }
  if _, err := time.LoadLocation(timezone); err != nil {
    return nil, fmt.Errorf("invalid timezone %q", timezone)
  }
  if err := us.userRepo.UpdateFields(ctx, nil, rd.UserID, map[string]interface{}{"timezone": timezone}); err != nil {
    return nil, err
  }
  return us.GetMe(ctx)
}
