package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"grana/models"
)

// CreateCategory inserts a user category, enforcing the one-level hierarchy
// and the parent/child type match.
func CreateCategory(db *sql.DB, userID string, c *models.Category) error {
	if c.Name == "" {
		return fmt.Errorf("category name is required: %w", models.ErrInvalidArgument)
	}
	if c.Type != models.TypeIncome && c.Type != models.TypeExpense {
		return fmt.Errorf("unknown category type %q: %w", c.Type, models.ErrInvalidArgument)
	}

	if c.ParentID != nil {
		parent, err := GetCategory(db, userID, *c.ParentID)
		if err != nil {
			return err
		}
		if parent.ParentID != nil {
			return fmt.Errorf("subcategories cannot have children: %w", models.ErrInvalidArgument)
		}
		if parent.Type != c.Type {
			return fmt.Errorf("subcategory type %q does not match parent type %q: %w",
				c.Type, parent.Type, models.ErrInvalidArgument)
		}
	}

	c.UserID = userID
	c.IsDefault = false
	c.CreatedAt = time.Now().UTC()

	result, err := db.Exec(`
		INSERT INTO categories (user_id, parent_id, name, type, icon, color, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)
	`, c.UserID, c.ParentID, c.Name, c.Type, c.Icon, c.Color, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get category id: %w", err)
	}
	c.ID = int(id)
	return nil
}

// GetCategory loads one category visible to the user: a global default or
// one the user owns.
func GetCategory(db *sql.DB, userID string, id int) (*models.Category, error) {
	var c models.Category
	var owner sql.NullString
	var parent sql.NullInt64
	var icon, color sql.NullString

	err := db.QueryRow(`
		SELECT id, user_id, parent_id, name, type, icon, color, is_default, created_at
		FROM categories
		WHERE id = ?
	`, id).Scan(&c.ID, &owner, &parent, &c.Name, &c.Type, &icon, &color, &c.IsDefault, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	if owner.Valid {
		c.UserID = owner.String
	}
	if parent.Valid {
		p := int(parent.Int64)
		c.ParentID = &p
	}
	c.Icon = icon.String
	c.Color = color.String

	if !c.IsDefault && c.UserID != userID {
		return nil, fmt.Errorf("category %d belongs to another user: %w", id, models.ErrPermissionDenied)
	}
	return &c, nil
}

// ListCategories returns the global defaults plus the user's own categories.
func ListCategories(db *sql.DB, userID string, txType string) ([]models.Category, error) {
	query := `
		SELECT id, user_id, parent_id, name, type, icon, color, is_default, created_at
		FROM categories
		WHERE (is_default = 1 OR user_id = ?)
	`
	args := []interface{}{userID}
	if txType != "" {
		query += " AND type = ?"
		args = append(args, txType)
	}
	query += " ORDER BY name"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var owner sql.NullString
		var parent sql.NullInt64
		var icon, color sql.NullString
		if err := rows.Scan(&c.ID, &owner, &parent, &c.Name, &c.Type, &icon, &color, &c.IsDefault, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if owner.Valid {
			c.UserID = owner.String
		}
		if parent.Valid {
			p := int(parent.Int64)
			c.ParentID = &p
		}
		c.Icon = icon.String
		c.Color = color.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory renames or restyles a user category. Global defaults are
// immutable.
func UpdateCategory(db *sql.DB, userID string, id int, name, icon, color string) (*models.Category, error) {
	c, err := GetCategory(db, userID, id)
	if err != nil {
		return nil, err
	}
	if c.IsDefault {
		return nil, fmt.Errorf("default categories cannot be modified: %w", models.ErrPermissionDenied)
	}
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", models.ErrInvalidArgument)
	}

	_, err = db.Exec(`
		UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ?
	`, name, icon, color, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	c.Name = name
	c.Icon = icon
	c.Color = color
	return c, nil
}

// DeleteCategory removes a user category. Global defaults are immutable;
// categories with subcategories must be emptied first.
func DeleteCategory(db *sql.DB, userID string, id int) error {
	c, err := GetCategory(db, userID, id)
	if err != nil {
		return err
	}
	if c.IsDefault {
		return fmt.Errorf("default categories cannot be deleted: %w", models.ErrPermissionDenied)
	}

	var children int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE parent_id = ?", id).Scan(&children); err != nil {
		return fmt.Errorf("failed to check subcategories: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("category %d still has subcategories: %w", id, models.ErrInvalidState)
	}

	if _, err := db.Exec("DELETE FROM categories WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
