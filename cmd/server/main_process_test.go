package main

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func swapHooks(t *testing.T) {
	t.Helper()
	origDotenv := loadDotenv
	origRedis := initRedis
	origOpenDB := openDB
	origStdDB := getStdDB
	t.Cleanup(func() {
		loadDotenv = origDotenv
		initRedis = origRedis
		openDB = origOpenDB
		getStdDB = origStdDB
	})
	loadDotenv = func(...string) error { return errors.New("no .env") }
}

func TestRunMainProcess_ExitsOnRedisInitFailure(t *testing.T) {
	swapHooks(t)
	initRedis = func(url, password string) error {
		return errors.New("connection refused")
	}

	err := runMainProcess()
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis")
}

func TestRunMainProcess_ExitsOnDBOpenFailure(t *testing.T) {
	swapHooks(t)
	initRedis = func(url, password string) error { return nil }
	openDB = func(dsn string) (*gorm.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	err := runMainProcess()
	require.Error(t, err)
	require.Contains(t, err.Error(), "database")
}

func TestRunMainProcess_ExitsWhenStdDBUnavailable(t *testing.T) {
	swapHooks(t)
	initRedis = func(url, password string) error { return nil }
	openDB = func(dsn string) (*gorm.DB, error) { return &gorm.DB{}, nil }
	getStdDB = func(db *gorm.DB) (*sql.DB, error) {
		return nil, errors.New("invalid connection")
	}

	err := runMainProcess()
	require.Error(t, err)
	require.Contains(t, err.Error(), "generic database object")
}
