// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"learnhub/internal/models"
	"learnhub/internal/slug"
)

// itemValidate is shared by every reorder request.
var itemValidate *validator.Validate

func init() {
	itemValidate = validator.New()
	_ = itemValidate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return slug.IsObjectID(fl.Field().String())
	})
}

// RawItem is one element of a reorder request as the client sent it.
// Decoding never fails: an element that is not an object, or whose fields
// have the wrong type, is kept as an invalid item and dropped later.
type RawItem struct {
	ID          any `json:"id"`
	OrderNumber any `json:"orderNumber"`
	malformed   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RawItem) UnmarshalJSON(data []byte) error {
	var v struct {
		ID          any `json:"id"`
		OrderNumber any `json:"orderNumber"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		r.malformed = true
		return nil
	}
	r.ID, r.OrderNumber = v.ID, v.OrderNumber
	return nil
}

// reorderEntry is the validated form of a RawItem.
type reorderEntry struct {
	ID          string `validate:"required,objectid"`
	OrderNumber string `validate:"required,numeric"`
}

// parse returns the item as a ReorderItem, or false when it is not a
// well-formed pair of a document id and an integral order number.
func (r RawItem) parse() (models.ReorderItem, bool) {
	if r.malformed {
		return models.ReorderItem{}, false
	}
	e := reorderEntry{OrderNumber: numberString(r.OrderNumber)}
	if id, ok := r.ID.(string); ok {
		e.ID = strings.TrimSpace(id)
	}
	if err := itemValidate.Struct(e); err != nil {
		return models.ReorderItem{}, false
	}

	f, err := strconv.ParseFloat(e.OrderNumber, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return models.ReorderItem{}, false
	}
	return models.ReorderItem{ID: strings.ToLower(e.ID), OrderNumber: int(f)}, true
}

// numberString renders a JSON number or numeric string for validation.
func numberString(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return strings.TrimSpace(n)
	default:
		return ""
	}
}

// ParseReorder keeps the well-formed items, in input order.
func ParseReorder(raw []RawItem) []models.ReorderItem {
	items := make([]models.ReorderItem, 0, len(raw))
	for _, r := range raw {
		if item, ok := r.parse(); ok {
			items = append(items, item)
		}
	}
	return items
}
