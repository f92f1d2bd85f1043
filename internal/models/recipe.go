package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// StringArray is a string slice stored as a JSON column.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

// Contains reports whether s is in the array.
func (a StringArray) Contains(s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

type Recipe struct {
	ID           uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time       `json:"timestamp"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	Category     Category        `gorm:"size:20;not null;index" json:"category"`
	ImageURL     string          `gorm:"size:255" json:"image_url"`
	AuthorID     uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author       *User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Rating       float64         `gorm:"not null;default:0" json:"rating"`
	Likes        int             `gorm:"not null;default:0" json:"likes"`
	Macros       Macros          `gorm:"embedded" json:"macros"`
	Tags         StringArray     `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Ingredients  StringArray     `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients,omitempty"`
	Instructions StringArray     `gorm:"type:jsonb;not null;default:'[]'" json:"instructions,omitempty"`
	PrepTime     int             `json:"prep_time,omitempty"` // minutes
	CookTime     int             `json:"cook_time,omitempty"` // minutes
	Servings     int             `json:"servings,omitempty"`
	Embedding    pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

// BeforeCreate assigns an ID when the caller has not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the search embedding in step with the text fields.
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	r.Embedding = GenerateEmbedding(r.Title + " " + r.Description)
	return nil
}

// FeaturedCategory implements featured.Candidate.
func (r *Recipe) FeaturedCategory() string { return string(r.Category) }

// FeaturedPopularity implements featured.Candidate.
func (r *Recipe) FeaturedPopularity() int { return r.Likes }

// RecipeLike records that a user liked a recipe. A user likes a recipe at most once.
type RecipeLike struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_like_pair" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_like_pair" json:"user_id"`
}

func (RecipeLike) TableName() string {
	return "recipe_likes"
}

func (l *RecipeLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
