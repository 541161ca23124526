package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cyberrps/arena/internal/models"
)

var (
	// ErrItemNotFound is returned for an item id missing from the catalog.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemAlreadyOwned is returned when buying a cosmetic twice.
	ErrItemAlreadyOwned = errors.New("item already owned")
	// ErrItemNotOwned is returned when equipping an unowned cosmetic.
	ErrItemNotOwned = errors.New("item not owned")
)

// ListItems returns the full cosmetics catalog.
func ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := DB.Query(ctx,
		`SELECT id, name, price, image_id, color, type FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.ImageID, &it.Color, &it.Type); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListInventory returns the ids of the cosmetics the player owns.
func ListInventory(ctx context.Context, userID uuid.UUID) ([]int, error) {
	rows, err := DB.Query(ctx,
		`SELECT item_id FROM user_items WHERE user_id=$1 ORDER BY item_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PurchaseItem buys a cosmetic: one transaction covering the ownership check,
// the guarded debit, and the inventory insert. Returns the new balance.
func PurchaseItem(ctx context.Context, userID uuid.UUID, itemID int) (int, error) {
	var balance int
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var price int
		err := tx.QueryRow(ctx, `SELECT price FROM items WHERE id=$1`, itemID).Scan(&price)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		var owned bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM user_items WHERE user_id=$1 AND item_id=$2)`,
			userID, itemID,
		).Scan(&owned)
		if err != nil {
			return err
		}
		if owned {
			return ErrItemAlreadyOwned
		}

		if err := debitTx(ctx, tx, userID, price); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_items (user_id, item_id) VALUES ($1, $2)`,
			userID, itemID,
		); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `SELECT coins FROM users WHERE id=$1`, userID).Scan(&balance)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// EquipItem sets an owned cosmetic into its category's slot.
func EquipItem(ctx context.Context, userID uuid.UUID, itemID int) error {
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var typ models.ItemType
		err := tx.QueryRow(ctx, `SELECT type FROM items WHERE id=$1`, itemID).Scan(&typ)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		var owned bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM user_items WHERE user_id=$1 AND item_id=$2)`,
			userID, itemID,
		).Scan(&owned)
		if err != nil {
			return err
		}
		if !owned {
			return ErrItemNotOwned
		}

		var col string
		switch typ {
		case models.ItemBorder:
			col = "equipped_border_id"
		case models.ItemBackground:
			col = "equipped_background_id"
		case models.ItemHands:
			col = "equipped_hands_id"
		default:
			return fmt.Errorf("unknown item type %q", typ)
		}
		_, err = tx.Exec(ctx, `UPDATE users SET `+col+` = $1 WHERE id = $2`, itemID, userID)
		return err
	})
}

// EquippedHandSkin returns the image id of the player's equipped hand
// cosmetic, or "" when nothing is equipped.
func EquippedHandSkin(ctx context.Context, userID uuid.UUID) (string, error) {
	var imageID *string
	err := DB.QueryRow(ctx,
		`SELECT i.image_id
		 FROM users u
		 LEFT JOIN items i ON i.id = u.equipped_hands_id
		 WHERE u.id = $1`,
		userID,
	).Scan(&imageID)
	if err != nil {
		return "", fmt.Errorf("equipped hand skin: %w", err)
	}
	if imageID == nil {
		return "", nil
	}
	return *imageID, nil
}
