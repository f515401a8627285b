package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		full_name TEXT NOT NULL,
		national_id_number TEXT,
		phone_number TEXT,
		address TEXT,
		date_of_birth DATETIME,
		gender TEXT,
		email_verified BOOLEAN NOT NULL DEFAULT 0,
		phone_verified BOOLEAN NOT NULL DEFAULT 0,
		id_image_url TEXT,
		profile_image_url TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createLoanTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE loans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount DECIMAL(20,2) NOT NULL,
		purpose TEXT NOT NULL,
		term INTEGER NOT NULL,
		payment_frequency TEXT NOT NULL,
		guarantor_name TEXT NOT NULL,
		guarantor_relationship TEXT NOT NULL,
		guarantor_id_url TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		admin_comment TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL,
		amount DECIMAL(20,2) NOT NULL,
		payment_method TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createRoleTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE roles (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createSupportTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE support_chats (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		subject TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE support_messages (
		id TEXT PRIMARY KEY,
		chat_id TEXT NOT NULL,
		sender_id TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME
	);`)
}
