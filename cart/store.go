package cart

import (
    "context"
    "encoding/json"

    "arbt-storefront-api/models"
)

// Store persists the full line-item list for one cart key. There is no
// partial update; callers always read-modify-write the whole list, which is
// fine at the expected cart sizes.
type Store interface {
    // Load returns the current list. A missing, unparseable or non-array
    // value is treated as an empty cart, never as an error, and the stored
    // value is reset to a valid empty array when corruption is detected.
    Load(ctx context.Context, key string) []models.LineItem

    // Save serializes and writes the full list, overwriting prior content.
    Save(ctx context.Context, key string, items []models.LineItem) error
}

// decodeItems parses a stored JSON value into a repaired line-item list.
// The second return value is false when the value is corrupted (not a JSON
// array) and the caller should reset the stored value.
func decodeItems(raw []byte) ([]models.LineItem, bool) {
    if len(raw) == 0 {
        return []models.LineItem{}, true
    }

    var items []models.LineItem
    if err := json.Unmarshal(raw, &items); err != nil {
        return []models.LineItem{}, false
    }
    return sanitizeItems(items), true
}

// sanitizeItems repairs malformed records at the storage boundary: quantities
// below 1 are clamped to 1 and records with a negative price are dropped.
func sanitizeItems(items []models.LineItem) []models.LineItem {
    out := make([]models.LineItem, 0, len(items))
    for _, it := range items {
        if it.Price < 0 {
            continue
        }
        if it.Quantity < 1 {
            it.Quantity = 1
        }
        out = append(out, it)
    }
    return out
}

func encodeItems(items []models.LineItem) []byte {
    if items == nil {
        items = []models.LineItem{}
    }
    raw, _ := json.Marshal(items)
    return raw
}
