package config

import (
	"errors"
	"fmt"
)

// ErrInvalid marks a configuration value that was replaced by a safe default.
var ErrInvalid = errors.New("invalid configuration value")

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Storage selects where the day counter is persisted.
type Storage struct {
	Driver     string         `yaml:"driver"` // "sqlite" or "postgres"
	SQLitePath string         `yaml:"sqlite_path"`
	Database   DatabaseConfig `yaml:"database"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultStorage returns a SQLite store under data/.
func DefaultStorage() Storage {
	return Storage{
		Driver:     DriverSQLite,
		SQLitePath: "data/nightzombies.db",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "nightzombies",
			Password: "nightzombies",
			DBName:   "nightzombies",
			SSLMode:  "disable",
		},
	}
}
