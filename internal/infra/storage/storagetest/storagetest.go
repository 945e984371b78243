// Package storagetest поднимает подключение к тестовой PostgreSQL для интеграционных тестов репозиториев.
// Тесты пропускаются, если TEST_DATABASE_URL не задан.
package storagetest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

// EnvDatabaseURL переменная окружения со строкой подключения к тестовой БД
const EnvDatabaseURL = "TEST_DATABASE_URL"

// Open подключается к тестовой БД и применяет миграции
func Open(t *testing.T) *dbmetrics.DB {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(context.Background()))

	schema, err := os.ReadFile(migrationPath())
	require.NoError(t, err)
	_, err = db.ExecContext(context.Background(), string(schema))
	require.NoError(t, err)

	return dbmetrics.Wrap(db, nil)
}

// CreateClient вставляет клиента напрямую и возвращает его ID
func CreateClient(t *testing.T, db *dbmetrics.DB) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO clients (id, email, password_hash, name) VALUES ($1, $2, $3, $4)`,
		id, id+"@example.com", "hash", "Test Client")
	require.NoError(t, err)

	return id
}

// Room уникальное имя комнаты, чтобы тесты не пересекались между запусками
func Room(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func migrationPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "001_init.sql")
}
