package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundRating normalizes a rating to one decimal place, half away from zero.
func RoundRating(rating float64) float64 {
	f, _ := decimal.NewFromFloat(rating).Round(1).Float64()
	return f
}

// FormatRating renders a rating with exactly one decimal ("7.0").
func FormatRating(rating float64) string {
	return decimal.NewFromFloat(rating).StringFixed(1)
}

// ParseID parses a positive integer path parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
