package spendwise

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/spendwise/spendwise-e2e/internal/errs"
)

// Store persists SpendWise records in sqlite. The schema is bootstrapped
// on open; ":memory:" works for hermetic test runs.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS wallets (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	balance_cents INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS transactions (
	id           TEXT PRIMARY KEY,
	wallet_id    TEXT NOT NULL REFERENCES wallets(id),
	category_id  TEXT NOT NULL REFERENCES categories(id),
	amount_cents INTEGER NOT NULL,
	note         TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS budgets (
	id          TEXT PRIMARY KEY,
	category_id TEXT NOT NULL REFERENCES categories(id),
	limit_cents INTEGER NOT NULL,
	note_md     TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);
`

// OpenStore opens (and bootstraps) the sqlite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "open sqlite database", err)
	}
	// sqlite handles one writer; the app serves requests sequentially
	// enough that a single connection avoids SQLITE_BUSY entirely.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.Internal, "bootstrap schema", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Category is a spending category.
type Category struct {
	ID    string
	Name  string
	Color string
}

// Wallet is a money source with a running balance in centavos.
type Wallet struct {
	ID           string
	Name         string
	BalanceCents int64
}

// Transaction is a signed movement of money; negative cents are expenses.
type Transaction struct {
	ID           string
	WalletID     string
	CategoryID   string
	WalletName   string
	CategoryName string
	AmountCents  int64
	Note         string
	CreatedAt    time.Time
}

// Budget caps a category's monthly spend.
type Budget struct {
	ID           string
	CategoryID   string
	CategoryName string
	LimitCents   int64
	NoteMD       string
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func (s *Store) CreateCategory(ctx context.Context, name, color string) (Category, error) {
	c := Category{ID: uuid.NewString(), Name: name, Color: color}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, color, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, now())
	if err != nil {
		return Category{}, errs.Wrap(errs.Internal, "insert category", err)
	}
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id, name, color string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, color = ? WHERE id = ?`, name, color, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "update category", err)
	}
	return requireRow(res, "category")
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "delete category", err)
	}
	return requireRow(res, "category")
}

func (s *Store) GetCategory(ctx context.Context, id string) (Category, error) {
	var c Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Color)
	if err == sql.ErrNoRows {
		return Category{}, errs.New(errs.InvalidArgument, "category not found")
	}
	if err != nil {
		return Category{}, errs.Wrap(errs.Internal, "get category", err)
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "list categories", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, errs.Wrap(errs.Internal, "scan category", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateWallet(ctx context.Context, name string, balanceCents int64) (Wallet, error) {
	w := Wallet{ID: uuid.NewString(), Name: name, BalanceCents: balanceCents}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wallets (id, name, balance_cents, created_at) VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, w.BalanceCents, now())
	if err != nil {
		return Wallet{}, errs.Wrap(errs.Internal, "insert wallet", err)
	}
	return w, nil
}

func (s *Store) UpdateWallet(ctx context.Context, id, name string, balanceCents int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE wallets SET name = ?, balance_cents = ? WHERE id = ?`, name, balanceCents, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "update wallet", err)
	}
	return requireRow(res, "wallet")
}

func (s *Store) DeleteWallet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wallets WHERE id = ?`, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "delete wallet", err)
	}
	return requireRow(res, "wallet")
}

func (s *Store) ListWallets(ctx context.Context) ([]Wallet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, balance_cents FROM wallets ORDER BY created_at`)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "list wallets", err)
	}
	defer rows.Close()

	var out []Wallet
	for rows.Next() {
		var w Wallet
		if err := rows.Scan(&w.ID, &w.Name, &w.BalanceCents); err != nil {
			return nil, errs.Wrap(errs.Internal, "scan wallet", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) CreateTransaction(ctx context.Context, walletID, categoryID string, amountCents int64, note string) (Transaction, error) {
	txn := Transaction{
		ID:          uuid.NewString(),
		WalletID:    walletID,
		CategoryID:  categoryID,
		AmountCents: amountCents,
		Note:        note,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, wallet_id, category_id, amount_cents, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.WalletID, txn.CategoryID, txn.AmountCents, txn.Note, now())
	if err != nil {
		return Transaction{}, errs.Wrap(errs.Internal, "insert transaction", err)
	}
	return txn, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, id string, amountCents int64, note string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET amount_cents = ?, note = ? WHERE id = ?`, amountCents, note, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "update transaction", err)
	}
	return requireRow(res, "transaction")
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "delete transaction", err)
	}
	return requireRow(res, "transaction")
}

func (s *Store) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	var txn Transaction
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT t.id, t.wallet_id, t.category_id, w.name, c.name, t.amount_cents, t.note, t.created_at
		 FROM transactions t
		 JOIN wallets w ON w.id = t.wallet_id
		 JOIN categories c ON c.id = t.category_id
		 WHERE t.id = ?`, id).
		Scan(&txn.ID, &txn.WalletID, &txn.CategoryID, &txn.WalletName, &txn.CategoryName,
			&txn.AmountCents, &txn.Note, &created)
	if err == sql.ErrNoRows {
		return Transaction{}, errs.New(errs.InvalidArgument, "transaction not found")
	}
	if err != nil {
		return Transaction{}, errs.Wrap(errs.Internal, "get transaction", err)
	}
	txn.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return txn, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.wallet_id, t.category_id, w.name, c.name, t.amount_cents, t.note, t.created_at
		 FROM transactions t
		 JOIN wallets w ON w.id = t.wallet_id
		 JOIN categories c ON c.id = t.category_id
		 ORDER BY t.created_at`)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "list transactions", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var txn Transaction
		var created string
		if err := rows.Scan(&txn.ID, &txn.WalletID, &txn.CategoryID, &txn.WalletName,
			&txn.CategoryName, &txn.AmountCents, &txn.Note, &created); err != nil {
			return nil, errs.Wrap(errs.Internal, "scan transaction", err)
		}
		txn.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, txn)
	}
	return out, rows.Err()
}

func (s *Store) CreateBudget(ctx context.Context, categoryID string, limitCents int64, noteMD string) (Budget, error) {
	b := Budget{ID: uuid.NewString(), CategoryID: categoryID, LimitCents: limitCents, NoteMD: noteMD}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (id, category_id, limit_cents, note_md, created_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.CategoryID, b.LimitCents, b.NoteMD, now())
	if err != nil {
		return Budget{}, errs.Wrap(errs.Internal, "insert budget", err)
	}
	return b, nil
}

func (s *Store) UpdateBudget(ctx context.Context, id string, limitCents int64, noteMD string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE budgets SET limit_cents = ?, note_md = ? WHERE id = ?`, limitCents, noteMD, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "update budget", err)
	}
	return requireRow(res, "budget")
}

func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "delete budget", err)
	}
	return requireRow(res, "budget")
}

func (s *Store) ListBudgets(ctx context.Context) ([]Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.category_id, c.name, b.limit_cents, b.note_md
		 FROM budgets b
		 JOIN categories c ON c.id = b.category_id
		 ORDER BY b.created_at`)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "list budgets", err)
	}
	defer rows.Close()

	var out []Budget
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.CategoryName, &b.LimitCents, &b.NoteMD); err != nil {
			return nil, errs.Wrap(errs.Internal, "scan budget", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Wrap(errs.Internal, "rows affected", err)
	}
	if n == 0 {
		return errs.New(errs.InvalidArgument, entity+" not found")
	}
	return nil
}
