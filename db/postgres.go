// api/db/postgres.go
package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/f4lcon-tech/aqari/api/logging"
)

var PostgresDB *sqlx.DB

func InitPostgres() error {
	conn, err := sqlx.Connect("postgres", viper.GetString("postgres.dsn"))
	if err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	conn.SetMaxOpenConns(viper.GetInt("postgres.maxOpenConns"))
	conn.SetMaxIdleConns(viper.GetInt("postgres.maxIdleConns"))

	PostgresDB = conn
	logger.Info("Successfully connected to Postgres")
	return nil
}

func ClosePostgres() {
	if PostgresDB != nil {
		if err := PostgresDB.Close(); err != nil {
			logger.Error("Error closing Postgres connection", zap.Error(err))
		}
	}
}
