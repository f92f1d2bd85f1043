// Package featured picks the recipes shown in the home feed's featured grid.
//
// Candidates are ranked by popularity and a per-category cap keeps any single
// category from taking over the grid. A category that hits its cap is never
// relaxed to fill remaining slots, so the result can be shorter than the
// requested size.
package featured

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

const (
	// DefaultMaxResults is the size of the featured grid.
	DefaultMaxResults = 8
	// DefaultMaxPerCategory is the category cap of the featured grid.
	DefaultMaxPerCategory = 2
)

// ErrInvalidArgument is returned when a limit is not strictly positive.
var ErrInvalidArgument = errors.New("featured: invalid argument")

// Candidate is anything that can be ranked into the featured grid.
type Candidate interface {
	FeaturedCategory() string
	FeaturedPopularity() int
}

// Select returns at most maxResults candidates ordered by descending
// popularity with no more than maxPerCategory from any one category.
// Ties keep their input order. The input slice is not modified.
func Select[T Candidate](candidates []T, maxResults, maxPerCategory int) ([]T, error) {
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: maxResults must be positive, got %d", ErrInvalidArgument, maxResults)
	}
	if maxPerCategory <= 0 {
		return nil, fmt.Errorf("%w: maxPerCategory must be positive, got %d", ErrInvalidArgument, maxPerCategory)
	}

	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b T) int {
		return cmp.Compare(b.FeaturedPopularity(), a.FeaturedPopularity())
	})

	selected := make([]T, 0, min(maxResults, len(ranked)))
	perCategory := make(map[string]int)
	for _, c := range ranked {
		if len(selected) >= maxResults {
			break
		}
		cat := c.FeaturedCategory()
		if perCategory[cat] >= maxPerCategory {
			continue
		}
		selected = append(selected, c)
		perCategory[cat]++
	}
	return selected, nil
}

// SelectDefault is Select with the grid's default limits.
func SelectDefault[T Candidate](candidates []T) []T {
	// The default limits are positive, so Select cannot fail here.
	out, _ := Select(candidates, DefaultMaxResults, DefaultMaxPerCategory)
	return out
}
