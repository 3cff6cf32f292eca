package store

import (
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		contact TEXT NOT NULL DEFAULT '',
		player_id TEXT NOT NULL DEFAULT '',
		reset_password_token TEXT NOT NULL DEFAULT '',
		reset_password_expires DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL DEFAULT 0,
		favorite_count INTEGER NOT NULL DEFAULT 0,
		sold_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS item_sizes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL REFERENCES items(id),
		size TEXT NOT NULL,
		price REAL NOT NULL,
		UNIQUE(item_id, size)
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL REFERENCES items(id),
		customer_name TEXT NOT NULL DEFAULT '',
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS carts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE REFERENCES customers(id)
	);

	CREATE TABLE IF NOT EXISTS cart_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cart_id INTEGER NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		item_id INTEGER NOT NULL REFERENCES items(id),
		name TEXT NOT NULL,
		size TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		price REAL NOT NULL,
		UNIQUE(cart_id, item_id, size)
	);

	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_ref TEXT NOT NULL UNIQUE,
		user_id INTEGER NOT NULL REFERENCES customers(id),
		customer_name TEXT NOT NULL DEFAULT '',
		customer_contact TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		billing_date DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_amount REAL NOT NULL,
		payment_method TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		building TEXT NOT NULL DEFAULT '',
		floor TEXT NOT NULL DEFAULT '',
		room TEXT NOT NULL DEFAULT '',
		pickup INTEGER NOT NULL DEFAULT 0,
		proof_of_delivery TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS order_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		item_id INTEGER NOT NULL REFERENCES items(id),
		name TEXT NOT NULL,
		size TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		price REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL REFERENCES orders(id),
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		reason TEXT NOT NULL,
		issue_description TEXT NOT NULL,
		solution TEXT NOT NULL DEFAULT '',
		proof_image TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Open',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(order_id, customer_id)
	);

	CREATE TABLE IF NOT EXISTS ticket_replies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id INTEGER NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
		message TEXT NOT NULL,
		sender TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS favorites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES customers(id),
		item_id INTEGER NOT NULL REFERENCES items(id),
		UNIQUE(user_id, item_id)
	);

	CREATE TABLE IF NOT EXISTS profile_images (
		user_id INTEGER PRIMARY KEY REFERENCES customers(id),
		profile_image_url TEXT NOT NULL
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
