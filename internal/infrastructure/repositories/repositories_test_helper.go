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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func timeNowPlus30m() time.Time {
	return time.Now().Add(30 * time.Minute)
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		phone TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		tier INTEGER NOT NULL DEFAULT 1,
		coin_balance INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAgentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE agents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		agent_code TEXT NOT NULL UNIQUE,
		coin_balance INTEGER NOT NULL DEFAULT 0 CHECK (coin_balance >= 0),
		trust_score INTEGER NOT NULL DEFAULT 0,
		state TEXT,
		city TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		total_verifications INTEGER NOT NULL DEFAULT 0,
		total_deposits INTEGER NOT NULL DEFAULT 0,
		commission_earned INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createCoinPurchaseTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE coin_purchases (
		id TEXT PRIMARY KEY,
		requester_id TEXT NOT NULL,
		agent_id TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price_per_coin INTEGER NOT NULL,
		total_price INTEGER NOT NULL,
		status TEXT NOT NULL,
		payment_method TEXT,
		payment_proof TEXT,
		notes TEXT,
		expires_at DATETIME NOT NULL,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createVerificationRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		agent_id TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		documents TEXT NOT NULL,
		notes TEXT,
		decided_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createCommissionEntryTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE commission_entries (
		id TEXT PRIMARY KEY,
		purchase_id TEXT NOT NULL UNIQUE,
		agent_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		created_at DATETIME
	);`)
}
