package database

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/pkg/logger"
)

func NewMySQLDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	// loc stays UTC: DATETIME columns hold storage-zone wall clock and are
	// read back without any conversion.
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Connected to MySQL database")
	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS device_setting (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		device_id VARCHAR(100) NOT NULL,
		instance VARCHAR(100) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS contact_categories (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS sequences (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		device_id CHAR(36) NOT NULL,
		category_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		schedule_date VARCHAR(10) NOT NULL,
		schedule_time VARCHAR(8) NOT NULL,
		min_delay INT NOT NULL DEFAULT 0,
		max_delay INT NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_sequences_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS sequence_flows (
		id CHAR(36) PRIMARY KEY,
		sequence_id CHAR(36) NOT NULL,
		flow_number INT NOT NULL,
		message TEXT NOT NULL,
		image_url VARCHAR(1024),
		delay_hours INT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_sequence_flows_number (sequence_id, flow_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS leads (
		id CHAR(36) PRIMARY KEY,
		category_id CHAR(36) NOT NULL,
		prospect_name VARCHAR(255),
		prospect_num VARCHAR(20) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_leads_category_created (category_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS sequence_enrollments (
		id CHAR(36) PRIMARY KEY,
		sequence_id CHAR(36) NOT NULL,
		prospect_num VARCHAR(20) NOT NULL,
		enrolled_at DATETIME NOT NULL,
		schedule_message DATETIME NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		INDEX idx_enrollments_sequence (sequence_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS sequence_scheduled_messages (
		id CHAR(36) PRIMARY KEY,
		enrollment_id CHAR(36) NOT NULL,
		sequence_id CHAR(36) NOT NULL,
		flow_number INT NOT NULL,
		prospect_num VARCHAR(20) NOT NULL,
		device_id CHAR(36) NOT NULL,
		whacenter_message_id VARCHAR(100),
		message TEXT NOT NULL,
		image_url VARCHAR(1024),
		scheduled_time DATETIME NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
		INDEX idx_scheduled_sequence_flow_status (sequence_id, flow_number, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

func RunMigrations(db *sqlx.DB) error {
	for _, schema := range migrations {
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.Infof("Database migrations completed")

	return nil
}
