package types

import (
	"github.com/google/uuid"
	"github.com/liqma/backend/internal/models"
)

// RegisterRequest is the sign-up body. It arrives as JSON or as a multipart
// form when an avatar image is attached.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Image string    `json:"image"`
}

// NewUserResponse strips private fields from a user.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.ImageURL}
}

// LoginResponse is returned by login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterResponse is returned by sign-up.
type RegisterResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string        `json:"title" binding:"required,max=255"`
	Description  string        `json:"description"`
	Category     string        `json:"category" binding:"required"`
	ImageURL     string        `json:"image_url"`
	Macros       models.Macros `json:"macros"`
	Tags         []string      `json:"tags"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions"`
	PrepTime     int           `json:"prep_time" binding:"gte=0"`
	CookTime     int           `json:"cook_time" binding:"gte=0"`
	Servings     int           `json:"servings" binding:"gte=0"`
}

// ExploreQuery holds the explore screen's filters.
type ExploreQuery struct {
	Query      string `form:"q"`
	MinProtein int    `form:"min_protein" binding:"gte=0"`
	DairyFree  bool   `form:"dairy_free"`
	Category   string `form:"category"`
}

// CategoryFeed groups the recipes of one category.
type CategoryFeed struct {
	Category models.Category  `json:"category"`
	Recipes  []*models.Recipe `json:"recipes"`
}

// HomeFeed is everything the home screen shows.
type HomeFeed struct {
	Greeting   string            `json:"greeting"`
	FoodFact   string            `json:"food_fact"`
	Featured   []*models.Recipe  `json:"featured"`
	Categories []models.Category `json:"categories"`
}
