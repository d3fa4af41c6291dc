package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the receiving middleware.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS api_logs (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp TEXT NOT NULL,
            endpoint TEXT NOT NULL,
            agent_name TEXT,
            site TEXT,
            status TEXT NOT NULL,
            response_code INTEGER NOT NULL,
            request_body TEXT,
            response_body TEXT,
            ip_address TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS receiving_tbs (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            document_no TEXT UNIQUE NOT NULL,
            timestamp TEXT NOT NULL,
            partner_id TEXT NOT NULL,
            journal_id TEXT NOT NULL,
            date_order TEXT NOT NULL,
            officers TEXT NOT NULL,
            keterangan_description TEXT,
            driver_name TEXT NOT NULL,
            vehicle_no TEXT NOT NULL,
            destination_warehouse_id TEXT NOT NULL,
            branch_id TEXT NOT NULL,
            original_payload TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS order_line (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            receiving_tbs_id INTEGER NOT NULL,
            product_code TEXT NOT NULL,
            qty_brutto REAL NOT NULL,
            qty_tara REAL NOT NULL,
            qty_netto REAL NOT NULL,
            product_uom TEXT NOT NULL,
            sortation_percent REAL,
            sortation_weight REAL,
            qty_netto2 REAL,
            price_unit REAL NOT NULL,
            product_qty INTEGER NOT NULL,
            incoming_date TEXT NOT NULL,
            outgoing_date TEXT NOT NULL,
            FOREIGN KEY(receiving_tbs_id) REFERENCES receiving_tbs(id)
        );`,
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT UNIQUE NOT NULL,
            password TEXT NOT NULL,
            role TEXT DEFAULT 'operator'
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
