package models

// Macros represents nutrition information for a recipe.
type Macros struct {
	Calories int `gorm:"not null;default:0" json:"calories"`
	Protein  int `gorm:"not null;default:0" json:"protein"` // grams
	Carbs    int `gorm:"not null;default:0" json:"carbs"`
	Fats     int `gorm:"not null;default:0" json:"fats"`
}
