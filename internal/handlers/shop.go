package handlers

import (
	"errors"
	"net/http"

	"github.com/cyberrps/arena/internal/database"
	"github.com/cyberrps/arena/internal/game"
)

// ShopItemsHandler returns the cosmetics catalog. No auth: the shop is
// browsable before login.
func ShopItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := database.ListItems(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

type itemRequest struct {
	ItemID int `json:"itemId"`
}

// ShopBuyHandler purchases a cosmetic: price debit and inventory insert are
// one transaction, so a failed debit leaves the inventory untouched.
func ShopBuyHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticateRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := database.PurchaseItem(r.Context(), userID, req.ItemID)
	switch {
	case err == nil:
	case errors.Is(err, database.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, database.ErrItemAlreadyOwned):
		writeError(w, http.StatusBadRequest, "item already owned")
		return
	case errors.Is(err, game.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "insufficient funds")
		return
	default:
		writeError(w, http.StatusInternalServerError, "purchase failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"coins":   balance,
	})
}

// ShopEquipHandler slots an owned cosmetic into its category.
func ShopEquipHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticateRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = database.EquipItem(r.Context(), userID, req.ItemID)
	switch {
	case err == nil:
	case errors.Is(err, database.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, database.ErrItemNotOwned):
		writeError(w, http.StatusBadRequest, "item not owned")
		return
	default:
		writeError(w, http.StatusInternalServerError, "equip failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
