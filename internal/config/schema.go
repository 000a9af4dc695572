package config

import (
	"database/sql"
	"fmt"
	"log"

	intdb "tripplanner/internal/db"
)

var createTables = []struct {
	name string
	ddl  string
}{
	{"users", `CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		email VARCHAR(190) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"trips", `CREATE TABLE IF NOT EXISTS trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		destination VARCHAR(190) NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		budget_total BIGINT NOT NULL DEFAULT 0,
		budget_spent BIGINT NOT NULL DEFAULT 0,
		budget_remaining BIGINT NOT NULL DEFAULT 0,
		preferences JSON NULL,
		itinerary LONGTEXT NULL,
		summary JSON NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'planning',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_trips_user (user_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"generation_logs", `CREATE TABLE IF NOT EXISTS generation_logs (
		id CHAR(36) PRIMARY KEY,
		user_id BIGINT NOT NULL,
		trip_id BIGINT NULL,
		kind VARCHAR(40) NOT NULL,
		provider VARCHAR(20) NOT NULL,
		prompt LONGTEXT NOT NULL,
		raw_response LONGTEXT NOT NULL,
		outcome VARCHAR(30) NOT NULL,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		KEY idx_generation_logs_user (user_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// Columns added after the first release. Older databases get them through
// ALTER TABLE on startup.
var addedColumns = []struct {
	table  string
	column string
	ddl    string
}{
	{"users", "preferences", "ALTER TABLE users ADD COLUMN preferences JSON NULL AFTER password_hash"},
	{"trips", "currency", "ALTER TABLE trips ADD COLUMN currency VARCHAR(3) NULL AFTER budget_remaining"},
	{"generation_logs", "stage", "ALTER TABLE generation_logs ADD COLUMN stage VARCHAR(20) NULL AFTER outcome"},
	{"generation_logs", "error_text", "ALTER TABLE generation_logs ADD COLUMN error_text TEXT NULL AFTER stage"},
}

type execQueryRower interface {
	intdb.QueryRower
	Exec(query string, args ...any) (sql.Result, error)
}

// EnsureSchema creates missing tables and columns. It is safe to run on
// every start.
func EnsureSchema(db execQueryRower) error {
	for _, t := range createTables {
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	for _, c := range addedColumns {
		if intdb.HasColumn(db, c.table, c.column) {
			continue
		}
		if _, err := db.Exec(c.ddl); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.column, err)
		}
		log.Printf("[DB] added column %s.%s", c.table, c.column)
	}
	return nil
}
