package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"grana/models"

	"github.com/google/uuid"
)

// TransactionFilter narrows ListTransactions.
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	Type       string
	CategoryID int
}

// CreateTransaction validates and inserts a transaction. The category must
// be visible to the user and its type must match the transaction type.
func CreateTransaction(db *sql.DB, userID string, t *models.Transaction) error {
	if t.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive: %w", models.ErrInvalidArgument)
	}
	if t.Type != models.TypeIncome && t.Type != models.TypeExpense {
		return fmt.Errorf("unknown transaction type %q: %w", t.Type, models.ErrInvalidArgument)
	}
	if len(t.Description) > models.MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters: %w",
			models.MaxDescriptionLength, models.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	if t.Date.IsZero() {
		t.Date = now
	}
	// allow up to tomorrow to tolerate timezone skew
	if t.Date.After(now.AddDate(0, 0, 1)) {
		return fmt.Errorf("transaction date is in the future: %w", models.ErrInvalidArgument)
	}

	category, err := GetCategory(db, userID, t.CategoryID)
	if err != nil {
		return err
	}
	if category.Type != t.Type {
		return fmt.Errorf("category %q is %s but transaction is %s: %w",
			category.Name, category.Type, t.Type, models.ErrInvalidArgument)
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.UserID = userID
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err = db.Exec(`
		INSERT INTO transactions (id, user_id, category_id, type, amount, description, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.CategoryID, t.Type, t.Amount, t.Description, t.Date, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransaction loads one of the user's transactions with its category.
func GetTransaction(db *sql.DB, userID, id string) (*models.TransactionWithCategory, error) {
	row := db.QueryRow(`
		SELECT t.id, t.user_id, t.category_id, t.type, t.amount, t.description, t.date,
		       t.created_at, t.updated_at, c.name, c.type, c.icon, c.color
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = ?
	`, id)

	t, err := scanTransactionWithCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("transaction %s belongs to another user: %w", id, models.ErrPermissionDenied)
	}
	return t, nil
}

// ListTransactions returns the user's transactions joined with their
// categories, newest first.
func ListTransactions(db *sql.DB, userID string, filter TransactionFilter) ([]models.TransactionWithCategory, error) {
	query := `
		SELECT t.id, t.user_id, t.category_id, t.type, t.amount, t.description, t.date,
		       t.created_at, t.updated_at, c.name, c.type, c.icon, c.color
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
	`
	args := []interface{}{userID}

	if filter.From != nil {
		query += " AND t.date >= ?"
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		query += " AND t.date <= ?"
		args = append(args, filter.To.UTC())
	}
	if filter.Type != "" {
		query += " AND t.type = ?"
		args = append(args, filter.Type)
	}
	if filter.CategoryID != 0 {
		query += " AND t.category_id = ?"
		args = append(args, filter.CategoryID)
	}
	query += " ORDER BY t.date DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.TransactionWithCategory
	for rows.Next() {
		t, err := scanTransactionWithCategory(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// UpdateTransaction rewrites a transaction's mutable fields after the same
// validation as create.
func UpdateTransaction(db *sql.DB, userID, id string, t *models.Transaction) error {
	existing, err := GetTransaction(db, userID, id)
	if err != nil {
		return err
	}

	if t.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive: %w", models.ErrInvalidArgument)
	}
	if t.Type != models.TypeIncome && t.Type != models.TypeExpense {
		return fmt.Errorf("unknown transaction type %q: %w", t.Type, models.ErrInvalidArgument)
	}
	if len(t.Description) > models.MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters: %w",
			models.MaxDescriptionLength, models.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	if t.Date.IsZero() {
		t.Date = existing.Date
	}
	if t.Date.After(now.AddDate(0, 0, 1)) {
		return fmt.Errorf("transaction date is in the future: %w", models.ErrInvalidArgument)
	}

	category, err := GetCategory(db, userID, t.CategoryID)
	if err != nil {
		return err
	}
	if category.Type != t.Type {
		return fmt.Errorf("category %q is %s but transaction is %s: %w",
			category.Name, category.Type, t.Type, models.ErrInvalidArgument)
	}

	_, err = db.Exec(`
		UPDATE transactions
		SET category_id = ?, type = ?, amount = ?, description = ?, date = ?, updated_at = ?
		WHERE id = ?
	`, t.CategoryID, t.Type, t.Amount, t.Description, t.Date, now, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes one of the user's transactions.
func DeleteTransaction(db *sql.DB, userID, id string) error {
	if _, err := GetTransaction(db, userID, id); err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM transactions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransactionWithCategory(row rowScanner) (*models.TransactionWithCategory, error) {
	var t models.TransactionWithCategory
	var description sql.NullString
	var icon, color sql.NullString

	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Type, &t.Amount, &description,
		&t.Date, &t.CreatedAt, &t.UpdatedAt, &t.CategoryName, &t.CategoryType, &icon, &color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	t.Description = description.String
	t.CategoryIcon = icon.String
	t.CategoryColor = color.String
	return &t, nil
}
