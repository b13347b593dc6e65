package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Participant, split and membership rows reference their parent record;
// emails are stored as-is (case-sensitive keys).
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_by TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id TEXT NOT NULL,
    email TEXT NOT NULL,
    PRIMARY KEY (group_id, email),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS group_unregistered (
    group_id TEXT NOT NULL,
    email TEXT NOT NULL,
    PRIMARY KEY (group_id, email),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    amount REAL NOT NULL,
    paid_by TEXT NOT NULL,
    split_method TEXT NOT NULL,
    created_at TEXT NOT NULL,
    group_id TEXT,
    created_by TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expense_participants (
    expense_id TEXT NOT NULL,
    email TEXT NOT NULL,
    PRIMARY KEY (expense_id, email),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_splits (
    expense_id TEXT NOT NULL,
    email TEXT NOT NULL,
    amount REAL NOT NULL,
    PRIMARY KEY (expense_id, email),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_unregistered (
    expense_id TEXT NOT NULL,
    email TEXT NOT NULL,
    PRIMARY KEY (expense_id, email),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    amount REAL NOT NULL,
    payer TEXT NOT NULL,
    payee TEXT NOT NULL,
    description TEXT NOT NULL,
    created_at TEXT NOT NULL,
    group_id TEXT
);

CREATE TABLE IF NOT EXISTS payment_unregistered (
    payment_id TEXT NOT NULL,
    email TEXT NOT NULL,
    PRIMARY KEY (payment_id, email),
    FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_expense_participants_email ON expense_participants(email);
CREATE INDEX IF NOT EXISTS idx_expenses_created_by ON expenses(created_by);
CREATE INDEX IF NOT EXISTS idx_expenses_split_method ON expenses(split_method);
CREATE INDEX IF NOT EXISTS idx_payments_payer ON payments(payer);
CREATE INDEX IF NOT EXISTS idx_payments_payee ON payments(payee);
CREATE INDEX IF NOT EXISTS idx_group_members_email ON group_members(email);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
