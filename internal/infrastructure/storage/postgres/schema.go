package postgres

import (
	"context"
	"fmt"

	"karobar/pkg/logger"
)

// schemaStatements creates all tables the service needs. Statements are
// idempotent so startup can apply them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		version       INT NOT NULL DEFAULT 1,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		gender        TEXT NOT NULL DEFAULT '',
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		last_login_at TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id             UUID PRIMARY KEY,
		version        INT NOT NULL DEFAULT 1,
		name           TEXT NOT NULL,
		sku            TEXT NOT NULL UNIQUE,
		pieces_per_box INT NOT NULL DEFAULT 1,
		stock          INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		cost_price     NUMERIC(15,2) NOT NULL DEFAULT 0,
		sale_price     NUMERIC(15,2) NOT NULL DEFAULT 0,
		expiry_date    DATE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id          UUID PRIMARY KEY,
		version     INT NOT NULL DEFAULT 1,
		name        TEXT NOT NULL,
		phone       TEXT NOT NULL DEFAULT '',
		address     TEXT NOT NULL DEFAULT '',
		salesman_id TEXT NOT NULL DEFAULT '',
		total_due   NUMERIC(15,2) NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_salesman ON customers (salesman_id)`,

	`CREATE TABLE IF NOT EXISTS sales (
		id               UUID PRIMARY KEY,
		version          INT NOT NULL DEFAULT 1,
		number           TEXT NOT NULL UNIQUE,
		date             TIMESTAMPTZ NOT NULL,
		salesman_id      TEXT NOT NULL,
		customer_id      UUID NOT NULL REFERENCES customers (id),
		customer_name    TEXT NOT NULL,
		customer_phone   TEXT NOT NULL DEFAULT '',
		customer_address TEXT NOT NULL DEFAULT '',
		discount         NUMERIC(15,2) NOT NULL DEFAULT 0,
		total_amount     NUMERIC(15,2) NOT NULL,
		paid_amount      NUMERIC(15,2) NOT NULL DEFAULT 0,
		due_amount       NUMERIC(15,2) NOT NULL DEFAULT 0 CHECK (due_amount >= 0),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by       TEXT NOT NULL DEFAULT '',
		CHECK (paid_amount + due_amount = total_amount)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_salesman_date ON sales (salesman_id, date)`,

	`CREATE TABLE IF NOT EXISTS sale_lines (
		line_id      UUID PRIMARY KEY,
		sale_id      UUID NOT NULL REFERENCES sales (id) ON DELETE CASCADE,
		line_no      INT NOT NULL,
		product_id   UUID NOT NULL REFERENCES products (id),
		product_name TEXT NOT NULL,
		quantity     INT NOT NULL CHECK (quantity > 0),
		unit_price   NUMERIC(15,2) NOT NULL,
		amount       NUMERIC(15,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_lines_sale ON sale_lines (sale_id)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id          UUID PRIMARY KEY,
		version     INT NOT NULL DEFAULT 1,
		sale_id     UUID NOT NULL REFERENCES sales (id),
		customer_id UUID NOT NULL REFERENCES customers (id),
		salesman_id TEXT NOT NULL DEFAULT '',
		amount      NUMERIC(15,2) NOT NULL CHECK (amount > 0),
		date        TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_sale ON payments (sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_customer ON payments (customer_id)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id          UUID PRIMARY KEY,
		version     INT NOT NULL DEFAULT 1,
		title       TEXT NOT NULL,
		category    TEXT NOT NULL,
		amount      NUMERIC(15,2) NOT NULL CHECK (amount > 0),
		date        TIMESTAMPTZ NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (date)`,

	`CREATE TABLE IF NOT EXISTS worker_tasks (
		worker_id   TEXT PRIMARY KEY,
		worker_name TEXT NOT NULL,
		task        TEXT NOT NULL,
		progress    TEXT NOT NULL,
		assigned_by TEXT NOT NULL DEFAULT '',
		assigned_at TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS task_history (
		id           UUID PRIMARY KEY,
		worker_id    TEXT NOT NULL,
		worker_name  TEXT NOT NULL,
		task         TEXT NOT NULL,
		assigned_at  TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_task_history_worker ON task_history (worker_id, completed_at)`,

	`CREATE TABLE IF NOT EXISTS salesman_plans (
		salesman_id    TEXT PRIMARY KEY,
		salesman_name  TEXT NOT NULL,
		location       TEXT NOT NULL,
		items_to_carry TEXT[] NOT NULL DEFAULT '{}',
		assigned_by    TEXT NOT NULL DEFAULT '',
		assigned_at    TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key         TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id                 UUID PRIMARY KEY,
		entity_type        TEXT NOT NULL,
		entity_id          UUID NOT NULL,
		action             TEXT NOT NULL,
		user_id            TEXT NOT NULL DEFAULT '',
		user_email         TEXT NOT NULL DEFAULT '',
		changes            JSONB,
		changes_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sys_audit_entity ON sys_audit (entity_type, entity_id, created_at)`,
}

// EnsureSchema applies the schema statements.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	logger.Debug(ctx, "database schema ensured", "statements", len(schemaStatements))
	return nil
}
