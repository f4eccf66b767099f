package database

import (
	"database/sql"
	"fmt"
	"time"

	"userregistry/pkg/logger"
)

type Migration struct {
	Name string
	Func func(*sql.Tx) error
}

type MigrationService struct {
	db         *sql.DB
	logger     logger.Logger
	migrations []Migration
}

func NewMigrationService(db *sql.DB, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:     db,
		logger: logger,
		migrations: []Migration{
			{Name: "create_users_table", Func: CreateUsersTable},
		},
	}
}

func (m *MigrationService) InitMigrationTable() error {
	query := `
    CREATE TABLE IF NOT EXISTS migrations (
        name TEXT PRIMARY KEY,
        applied_at TIMESTAMP NOT NULL
    )
    `

	if _, err := m.db.Exec(query); err != nil {
		m.logger.Error("Migration tablosu oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) IsMigrationApplied(name string) (bool, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = $1", name).Scan(&count)
	if err != nil {
		m.logger.Error("Migration durumu kontrol edilemedi", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}

	return count > 0, nil
}

func (m *MigrationService) ApplyMigration(migration Migration) (err error) {
	applied, err := m.IsMigrationApplied(migration.Name)
	if err != nil {
		return err
	}

	if applied {
		m.logger.Debug("Migration zaten uygulanmış", map[string]interface{}{"name": migration.Name})
		return nil
	}

	m.logger.Info("Migration uygulanıyor", map[string]interface{}{"name": migration.Name})

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction başlatılamadı: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			m.logger.Error("Migration geri alındı", map[string]interface{}{"name": migration.Name, "error": err.Error()})
		}
	}()

	if err = migration.Func(tx); err != nil {
		return err
	}

	if _, err = tx.Exec("INSERT INTO migrations (name, applied_at) VALUES ($1, $2)", migration.Name, time.Now()); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	m.logger.Info("Migration başarıyla uygulandı", map[string]interface{}{"name": migration.Name})
	return nil
}

func (m *MigrationService) RunMigrations() error {
	if err := m.InitMigrationTable(); err != nil {
		return fmt.Errorf("migration tablosu oluşturulamadı: %w", err)
	}

	for _, migration := range m.migrations {
		if err := m.ApplyMigration(migration); err != nil {
			return fmt.Errorf("migration uygulanamadı %s: %w", migration.Name, err)
		}
	}

	return nil
}

func CreateUsersTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS users (
        id INTEGER PRIMARY KEY,
        username TEXT NOT NULL,
        password TEXT NOT NULL,
        created_at TIMESTAMP NOT NULL
    )
    `

	_, err := tx.Exec(query)
	return err
}
