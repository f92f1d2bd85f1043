package models

import (
	"fmt"
	"strings"
)

// Category is the meal slot a recipe belongs to.
type Category string

const (
	Breakfast Category = "Breakfast"
	Lunch     Category = "Lunch"
	Dinner    Category = "Dinner"
	Snack     Category = "Snack"
	Dessert   Category = "Dessert"
	Drinks    Category = "Drinks"
)

// Categories lists every category in display order.
var Categories = []Category{Breakfast, Lunch, Dinner, Snack, Dessert, Drinks}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the known categories ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, known := range Categories {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
