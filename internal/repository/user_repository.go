package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"userregistry/internal/domain"
	"userregistry/pkg/logger"
)

type UserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) FindByID(id int) (*domain.User, error) {
	query := `SELECT id, username, password FROM users WHERE id = $1`

	var user domain.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) Create(user domain.User) error {
	query := `INSERT INTO users (id, username, password, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, user.ID, user.Username, user.Password, time.Now())
	if err != nil {
		r.logger.Error("Kullanıcı oluşturulamadı", map[string]interface{}{"id": user.ID, "error": err.Error()})
		return fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	return nil
}

// Delete reports whether a row with the given id existed and was removed.
func (r *UserRepository) Delete(id int) (bool, error) {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Error("Kullanıcı silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return false, fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("silinen satır sayısı okunamadı: %w", err)
	}

	return affected > 0, nil
}
