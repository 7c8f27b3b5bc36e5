package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shades-shop/internal/domain"
	"shades-shop/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	password TEXT NOT NULL
);
`

const createCartItemsTable = `
CREATE TABLE IF NOT EXISTS cart_items (
	username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	product_id TEXT NOT NULL,
	category_id TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL DEFAULT 0,
	quantity INTEGER NOT NULL,
	PRIMARY KEY (username, product_id)
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createCartItemsTable); err != nil {
		return fmt.Errorf("create cart_items table: %w", err)
	}
	return nil
}

func (r *UserRepository) Upsert(ctx context.Context, user domain.User) error {
	if user.Username == "" {
		return fmt.Errorf("upsert user: username is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert user: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO users (username, password)
VALUES (?, ?)
ON CONFLICT(username) DO UPDATE SET password = excluded.password`,
		user.Username,
		user.Password,
	); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	if err := replaceCart(ctx, tx, user.Username, user.Cart); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx, `
SELECT username, password
FROM users
WHERE username = ?`,
		username,
	).Scan(&user.Username, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	cart, err := r.listCart(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Cart = cart
	return &user, nil
}

func (r *UserRepository) SaveCart(ctx context.Context, username string, cart domain.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save cart: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&exists); err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("user %q: %w", username, repository.ErrNotFound)
	}

	if err := replaceCart(ctx, tx, username, cart); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save cart: %w", err)
	}
	return nil
}

func (r *UserRepository) listCart(ctx context.Context, username string) (domain.Cart, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT product_id, category_id, name, price, quantity
FROM cart_items
WHERE username = ?
ORDER BY position ASC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	cart := domain.Cart{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		cart = append(cart, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return cart, nil
}

func replaceCart(ctx context.Context, tx *sql.Tx, username string, cart domain.Cart) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE username = ?`, username); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO cart_items (username, position, product_id, category_id, name, price, quantity)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cart item insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range cart {
		if _, err := stmt.ExecContext(ctx,
			username,
			i,
			item.ID,
			item.CategoryID,
			item.Name,
			item.Price,
			item.Quantity,
		); err != nil {
			return fmt.Errorf("insert cart item %s: %w", item.ID, err)
		}
	}
	return nil
}
