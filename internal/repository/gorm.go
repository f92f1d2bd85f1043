package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/liqma/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecipeRepository stores recipes through gorm on Postgres or SQLite.
type GormRecipeRepository struct {
	db *gorm.DB
}

func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

func (r *GormRecipeRepository) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}

// textColumn renders a JSON column so LIKE works on both dialects.
func (r *GormRecipeRepository) textColumn(col string) string {
	if r.isPostgres() {
		return col + "::text"
	}
	return col
}

func (r *GormRecipeRepository) List(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error) {
	query := r.db.WithContext(ctx).Model(&models.Recipe{}).Preload("Author")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinProtein > 0 {
		query = query.Where("protein >= ?", filter.MinProtein)
	}
	for _, tag := range filter.Tags {
		query = query.Where(r.textColumn("tags")+` LIKE ? ESCAPE '\'`, `%"`+escapeLike(tag)+`"%`)
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		like := "%" + escapeLike(q) + "%"
		query = query.Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\' OR LOWER(`+r.textColumn("tags")+`) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
		if r.isPostgres() {
			vec := models.GenerateEmbedding(filter.Query)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		}
	}

	var recipes []*models.Recipe
	if err := query.Order("created_at ASC").Order("id ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (r *GormRecipeRepository) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).Preload("Author").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return &recipe, nil
}

func (r *GormRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := ValidateRecipe(recipe); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit("Author").Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Like records the like and bumps the counter once per user.
func (r *GormRecipeRepository) Like(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRecipe(tx, recipeID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.RecipeLike{}).
			Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(&models.RecipeLike{RecipeID: recipeID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to like recipe %s: %w", recipeID, err)
	}
	return r.Get(ctx, recipeID)
}

func (r *GormRecipeRepository) Unlike(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRecipe(tx, recipeID); err != nil {
			return err
		}
		res := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Delete(&models.RecipeLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Recipe{}).Where("id = ? AND likes > 0", recipeID).
			UpdateColumn("likes", gorm.Expr("likes - 1")).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to unlike recipe %s: %w", recipeID, err)
	}
	return r.Get(ctx, recipeID)
}

// likeEscaper makes user text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func ensureRecipe(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// GormUserRepository stores users through gorm.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)

	// Check if user already exists
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
