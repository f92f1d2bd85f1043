package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/liqma/backend/internal/repository"
)

// Stats counts what Load wrote.
type Stats struct {
	Users   int
	Recipes int
	Skipped int
}

// Load persists the generator's authors and n recipes. Records that already
// exist are skipped, so loading the same seed twice is a no-op. A demo author
// already stored under another id (an earlier seed) keeps that id and the new
// recipes are attributed to it.
func Load(ctx context.Context, g *Generator, users repository.UserRepository, recipes repository.RecipeRepository, n int) (Stats, error) {
	var st Stats
	existing := make(map[uuid.UUID]uuid.UUID)
	for _, u := range g.Users() {
		_, err := users.FindByID(ctx, u.ID)
		if err == nil {
			st.Skipped++
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return st, fmt.Errorf("failed to look up user %s: %w", u.Email, err)
		}
		if err := users.Create(ctx, &u); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				stored, err := users.FindByEmail(ctx, u.Email)
				if err != nil {
					return st, fmt.Errorf("failed to look up user %s: %w", u.Email, err)
				}
				existing[u.ID] = stored.ID
				st.Skipped++
				continue
			}
			return st, fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		st.Users++
	}

	for _, r := range g.Recipes(n) {
		if id, ok := existing[r.AuthorID]; ok {
			r.AuthorID = id
		}
		_, err := recipes.Get(ctx, r.ID)
		if err == nil {
			st.Skipped++
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return st, fmt.Errorf("failed to look up recipe %s: %w", r.ID, err)
		}
		if err := recipes.Create(ctx, r); err != nil {
			return st, fmt.Errorf("failed to create recipe %q: %w", r.Title, err)
		}
		st.Recipes++
	}
	return st, nil
}
