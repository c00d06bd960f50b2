package repository

import (
	"context"
	"errors"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)

	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	FindFriends(ctx context.Context, userID int) ([]*entity.User, error)
	FindCommonFriends(ctx context.Context, userID, otherID int) ([]*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = "id, email, login, name, birthday"

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, login, name, birthday)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	).Scan(&user.ID)

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("login", user.Login),
		)
		return apperr.Unexpected("create user returned no id", err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Login,
		&user.Name,
		&user.Birthday,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int("user_id", id),
		)
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all users", zap.Error(err))
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, login = $3, name = $4, birthday = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	)

	if err != nil {
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.Int("user_id", user.ID),
		)
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("user %d not found", user.ID)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int("user_id", id),
		)
		return fmt.Errorf("delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("user %d not found", id)
	}

	r.log.Info("User deleted", zap.Int("user_id", id))
	return nil
}

func (r *userRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		r.log.Error("Failed to check user existence",
			zap.Error(err),
			zap.Int("user_id", id),
		)
		return false, fmt.Errorf("check user existence: %w", err)
	}

	return exists, nil
}

func (r *userRepository) AddFriend(ctx context.Context, userID, friendID int) error {
	query := `
		INSERT INTO friendship (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, friendID)
	if err != nil {
		r.log.Error("Failed to add friend",
			zap.Error(err),
			zap.Int("user_id", userID),
			zap.Int("friend_id", friendID),
		)
		return fmt.Errorf("add friend: %w", err)
	}

	return nil
}

func (r *userRepository) RemoveFriend(ctx context.Context, userID, friendID int) error {
	query := `DELETE FROM friendship WHERE user_id = $1 AND friend_id = $2`

	_, err := r.db.Exec(ctx, query, userID, friendID)
	if err != nil {
		r.log.Error("Failed to remove friend",
			zap.Error(err),
			zap.Int("user_id", userID),
			zap.Int("friend_id", friendID),
		)
		return fmt.Errorf("remove friend: %w", err)
	}

	return nil
}

func (r *userRepository) FindFriends(ctx context.Context, userID int) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.email, u.login, u.name, u.birthday
		FROM users u
		JOIN friendship f ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find friends",
			zap.Error(err),
			zap.Int("user_id", userID),
		)
		return nil, fmt.Errorf("find friends: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *userRepository) FindCommonFriends(ctx context.Context, userID, otherID int) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.email, u.login, u.name, u.birthday
		FROM users u
		JOIN friendship f1 ON u.id = f1.friend_id AND f1.user_id = $1
		JOIN friendship f2 ON u.id = f2.friend_id AND f2.user_id = $2
		ORDER BY u.id
	`

	rows, err := r.db.Query(ctx, query, userID, otherID)
	if err != nil {
		r.log.Error("Failed to find common friends",
			zap.Error(err),
			zap.Int("user_id", userID),
			zap.Int("other_id", otherID),
		)
		return nil, fmt.Errorf("find common friends: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]*entity.User, error) {
	// Zero rows yield an empty list, never nil, so callers marshal []
	users := []*entity.User{}
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Login,
			&user.Name,
			&user.Birthday,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}
