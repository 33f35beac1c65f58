package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the service. Statements are idempotent so the
// schema can be applied on every startup and in tests.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		shop_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS shops (
		shop_id TEXT PRIMARY KEY,
		shop_name TEXT NOT NULL,
		shop_owner_email TEXT NOT NULL,
		product_limit INT NOT NULL DEFAULT 0,
		line_of_product INT NOT NULL DEFAULT 0 CHECK (line_of_product >= 0),
		purchase_count INT NOT NULL DEFAULT 0,
		payment_ids TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_shops_owner ON shops(shop_owner_email);
	CREATE INDEX IF NOT EXISTS idx_shops_name ON shops(shop_name);

	CREATE TABLE IF NOT EXISTS shop_employees (
		shop_id TEXT NOT NULL REFERENCES shops(shop_id) ON DELETE CASCADE,
		email TEXT NOT NULL,
		PRIMARY KEY (shop_id, email)
	);
	CREATE INDEX IF NOT EXISTS idx_shop_employees_email ON shop_employees(email);

	CREATE SEQUENCE IF NOT EXISTS product_id_seq;

	CREATE TABLE IF NOT EXISTS products (
		product_id TEXT PRIMARY KEY,
		shop_id TEXT NOT NULL,
		shop_owner_email TEXT NOT NULL,
		name TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		sale_count INT NOT NULL DEFAULT 0,
		production_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
		profit_margin NUMERIC(6,2) NOT NULL DEFAULT 0,
		discount NUMERIC(6,2) NOT NULL DEFAULT 0,
		selling_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		product_location TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_products_shop ON products(shop_id);
	CREATE INDEX IF NOT EXISTS idx_products_owner ON products(shop_owner_email);

	CREATE TABLE IF NOT EXISTS carts (
		id UUID PRIMARY KEY,
		shop_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		product_name TEXT NOT NULL DEFAULT '',
		sale_quantity INT NOT NULL CHECK (sale_quantity > 0),
		selling_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		discount NUMERIC(6,2) NOT NULL DEFAULT 0,
		buying_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		issued_by TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_carts_shop ON carts(shop_id);

	CREATE TABLE IF NOT EXISTS sale_invoices (
		id UUID PRIMARY KEY,
		invoice_number TEXT NOT NULL,
		invoice_date TEXT NOT NULL,
		shop_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		product_name TEXT NOT NULL DEFAULT '',
		sale_quantity INT NOT NULL,
		selling_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		discount NUMERIC(6,2) NOT NULL DEFAULT 0,
		buying_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		issued_by TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_sale_invoices_shop ON sale_invoices(shop_id);
	CREATE INDEX IF NOT EXISTS idx_sale_invoices_number ON sale_invoices(invoice_number);

	CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		shop_id TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		paid_amount NUMERIC(12,2) NOT NULL,
		granted_limit INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_payments_shop ON payments(shop_id);

	CREATE TABLE IF NOT EXISTS join_requests (
		id UUID PRIMARY KEY,
		candidate_email TEXT NOT NULL,
		shop_id TEXT NOT NULL,
		shop_name TEXT NOT NULL DEFAULT '',
		join_post TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_join_requests_shop ON join_requests(shop_id);
`

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
