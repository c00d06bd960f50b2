package usecase

import (
	"context"
	"fmt"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/pkg/apperr"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetUsers(ctx context.Context) ([]*entity.User, error)
	GetUserByID(ctx context.Context, userID int) (*entity.User, error)
	CreateUser(ctx context.Context, req *request.UserCreateRequest) (*entity.User, error)
	UpdateUser(ctx context.Context, req *request.UserUpdateRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, userID int) error

	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	GetFriends(ctx context.Context, userID int) ([]*entity.User, error)
	GetCommonFriends(ctx context.Context, userID, otherID int) ([]*entity.User, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req *request.UserCreateRequest) (*entity.User, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidRequest("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := buildUser(req.Email, req.Login, req.Name, req.Birthday)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created",
		zap.Int("user_id", user.ID),
		zap.String("login", user.Login),
	)
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, req *request.UserUpdateRequest) (*entity.User, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidRequest("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := buildUser(req.Email, req.Login, req.Name, req.Birthday)
	if err != nil {
		return nil, err
	}
	user.ID = req.ID

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("User updated", zap.Int("user_id", user.ID))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int) error {
	return s.repo.User.Delete(ctx, userID)
}

func (s *userService) AddFriend(ctx context.Context, userID, friendID int) error {
	if err := requireUserExists(ctx, s.repo.User, userID); err != nil {
		return err
	}
	if err := requireUserExists(ctx, s.repo.User, friendID); err != nil {
		return err
	}

	if err := s.repo.User.AddFriend(ctx, userID, friendID); err != nil {
		return fmt.Errorf("add friend: %w", err)
	}

	s.log.Info("Friend added",
		zap.Int("user_id", userID),
		zap.Int("friend_id", friendID),
	)
	return nil
}

func (s *userService) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if err := requireUserExists(ctx, s.repo.User, userID); err != nil {
		return err
	}
	if err := requireUserExists(ctx, s.repo.User, friendID); err != nil {
		return err
	}

	if err := s.repo.User.RemoveFriend(ctx, userID, friendID); err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}

	return nil
}

func (s *userService) GetFriends(ctx context.Context, userID int) ([]*entity.User, error) {
	if err := requireUserExists(ctx, s.repo.User, userID); err != nil {
		return nil, err
	}

	friends, err := s.repo.User.FindFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get friends: %w", err)
	}
	return friends, nil
}

func (s *userService) GetCommonFriends(ctx context.Context, userID, otherID int) ([]*entity.User, error) {
	if err := requireUserExists(ctx, s.repo.User, userID); err != nil {
		return nil, err
	}
	if err := requireUserExists(ctx, s.repo.User, otherID); err != nil {
		return nil, err
	}

	friends, err := s.repo.User.FindCommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("get common friends: %w", err)
	}
	return friends, nil
}

func buildUser(email, login, name, birthday string) (*entity.User, error) {
	born, err := entity.ParseDate(birthday)
	if err != nil {
		return nil, apperr.InvalidRequest("invalid birthday: %s", birthday)
	}
	if born.After(time.Now()) {
		return nil, apperr.InvalidRequest("birthday %s is in the future", born)
	}

	// Display name falls back to login
	if name == "" {
		name = login
	}

	return &entity.User{
		Email:    email,
		Login:    login,
		Name:     name,
		Birthday: born,
	}, nil
}
