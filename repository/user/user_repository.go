package user

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	Update(ctx context.Context, id uint64, req *model.UserUpdate) error
	UpdateLastLogin(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery      = `INSERT INTO users (name, email, password_hash, is_active, created_at) VALUES (?, ?, ?, true, NOW())`
	getUserBase          = `SELECT id, name, email, password_hash, is_active, created_at, updated_at, last_login FROM users WHERE true`
	updateLastLoginQuery = `UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?`
	deleteUserQuery      = `DELETE FROM users WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery, data.Name, data.Email, data.PasswordHash)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	data.IsActive = true
	return data, nil
}

// Get returns nil, nil when no user matches.
func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Update(ctx context.Context, id uint64, req *model.UserUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *req.Email)
	}
	if req.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *req.PasswordHash)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	_, err := s.conn.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

func (s *SQL) UpdateLastLogin(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, updateLastLoginQuery, id)
	return err
}

// Delete reports whether a row was removed. Listings cascade with the user.
func (s *SQL) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := s.conn.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
