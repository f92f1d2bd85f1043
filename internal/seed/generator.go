// Package seed builds the demo catalog used to populate a fresh database.
package seed

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/liqma/backend/internal/models"
)

var recipeImages = []string{
	"https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1482049016688-2d3e1b311543?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1484723091739-30a097e8f929?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1473093295043-cdd812d0e601?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1490645935967-10de6ba17061?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=800&q=80",
}

// Demo recipes cycle through these; Dessert is intentionally absent.
var cycleCategories = []models.Category{
	models.Breakfast, models.Lunch, models.Dinner, models.Snack, models.Drinks,
}

type details struct {
	description  string
	ingredients  []string
	instructions []string
	prepTime     int
	cookTime     int
	servings     int
}

var recipeDetails = []details{
	{
		description: "A healthy and delicious breakfast that will keep you energized all morning. Packed with protein and fresh ingredients.",
		ingredients: []string{
			"2 large eggs",
			"1/2 cup fresh spinach",
			"1/4 cup feta cheese, crumbled",
			"1 tbsp olive oil",
			"Salt and pepper to taste",
			"1 slice whole grain bread, toasted",
			"1 tbsp butter",
		},
		instructions: []string{
			"Heat olive oil in a non-stick pan over medium heat",
			"Add spinach and cook until wilted, about 2 minutes",
			"Whisk eggs with salt and pepper in a bowl",
			"Pour eggs into the pan and scramble gently",
			"When eggs are almost set, add feta cheese and mix",
			"Serve hot with toasted bread and butter on the side",
		},
		prepTime: 5, cookTime: 10, servings: 1,
	},
	{
		description: "A refreshing and nutritious lunch bowl with quinoa, fresh vegetables, and a tangy lemon dressing.",
		ingredients: []string{
			"1 cup cooked quinoa",
			"1/2 cup cherry tomatoes, halved",
			"1/2 cucumber, diced",
			"1/4 cup red onion, thinly sliced",
			"2 tbsp olive oil",
			"1 tbsp fresh lemon juice",
			"Fresh herbs (parsley, mint), chopped",
			"Salt and pepper to taste",
		},
		instructions: []string{
			"Cook quinoa according to package instructions and let cool",
			"Dice vegetables and mix together in a large bowl",
			"Whisk olive oil and lemon juice together for the dressing",
			"Combine cooled quinoa with vegetables",
			"Drizzle dressing over the mixture and toss well",
			"Garnish with fresh herbs and season with salt and pepper",
		},
		prepTime: 10, cookTime: 15, servings: 2,
	},
	{
		description: "A hearty dinner with tender chicken and crisp vegetables, perfect for a cozy evening.",
		ingredients: []string{
			"1 lb chicken breast, cut into strips",
			"2 cups mixed vegetables (bell peppers, broccoli, carrots)",
			"1 cup brown rice, cooked",
			"2 cloves garlic, minced",
			"1 tbsp soy sauce",
			"1 tsp fresh ginger, grated",
			"2 tbsp vegetable oil",
			"Green onions for garnish",
		},
		instructions: []string{
			"Cook brown rice according to package instructions",
			"Cut chicken into thin strips and season with salt",
			"Heat oil in a large pan over high heat",
			"Cook chicken until golden and cooked through, about 6-8 minutes",
			"Add garlic and ginger, stir for 30 seconds",
			"Add vegetables and stir-fry for 4-5 minutes until crisp-tender",
			"Season with soy sauce and toss everything together",
			"Serve over rice and garnish with green onions",
		},
		prepTime: 15, cookTime: 20, servings: 3,
	},
	{
		description: "A quick snack for between meals. High in protein and fiber, this parfait will keep you satisfied.",
		ingredients: []string{
			"1/2 cup Greek yogurt",
			"1/4 cup granola",
			"1/2 cup mixed berries (strawberries, blueberries, raspberries)",
			"1 tbsp honey",
			"1 tbsp chia seeds",
		},
		instructions: []string{
			"Layer half of the Greek yogurt in a glass or bowl",
			"Add a layer of granola on top",
			"Add fresh berries",
			"Top with remaining yogurt",
			"Drizzle with honey",
			"Sprinkle chia seeds on top",
			"Enjoy immediately or refrigerate for up to 2 hours",
		},
		prepTime: 5, cookTime: 0, servings: 1,
	},
	{
		description: "A refreshing and energizing drink packed with vitamins and natural flavors.",
		ingredients: []string{
			"1 cup fresh orange juice",
			"1/2 cup sparkling water",
			"1 tbsp fresh lemon juice",
			"1 tsp honey",
			"Fresh mint leaves",
			"Ice cubes",
		},
		instructions: []string{
			"Pour orange juice into a glass",
			"Add sparkling water and lemon juice",
			"Stir in honey until dissolved",
			"Add ice cubes and fresh mint leaves",
			"Garnish with a slice of orange",
			"Serve immediately and enjoy",
		},
		prepTime: 5, cookTime: 0, servings: 1,
	},
}

// Authors are the demo users recipes are attributed to.
var Authors = []models.User{
	{Name: "SarahFit", Email: "sarah@liqma.dev", ImageURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah", Followers: 890, Following: 120, AvgRating: 4.5},
	{Name: "KetoKing", Email: "king@liqma.dev", ImageURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=King", Followers: 3400, Following: 10, AvgRating: 4.9},
	{Name: "VeganVibes", Email: "vegan@liqma.dev", ImageURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Vegan", Followers: 560, Following: 500, AvgRating: 4.2},
}

// Generator produces a reproducible demo catalog. Two generators built from
// the same seed yield identical catalogs.
type Generator struct {
	rng  *rand.Rand
	seed uint64
}

// NewGenerator creates a Generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Users returns the demo authors with IDs derived from the generator seed.
func (g *Generator) Users() []models.User {
	users := make([]models.User, len(Authors))
	for i, a := range Authors {
		a.ID = g.id("user", i)
		users[i] = a
	}
	return users
}

// Recipes returns n demo recipes attributed round-robin to Users().
func (g *Generator) Recipes(n int) []*models.Recipe {
	users := g.Users()
	out := make([]*models.Recipe, n)
	for i := 0; i < n; i++ {
		d := recipeDetails[i%len(recipeDetails)]
		tag := "High-Protein"
		if g.rng.Float64() > 0.5 {
			tag = "Dairy-Free"
		}
		out[i] = &models.Recipe{
			ID:          g.id("recipe", i),
			Title:       fmt.Sprintf("Delicious Liqma %d", i+1),
			AuthorID:    users[i%len(users)].ID,
			ImageURL:    recipeImages[i%len(recipeImages)],
			Category:    cycleCategories[i%len(cycleCategories)],
			Rating:      math.Round((3+g.rng.Float64()*2)*10) / 10,
			Likes:       g.rng.IntN(500),
			Description: d.description,
			Macros: models.Macros{
				Calories: 300 + g.rng.IntN(500),
				Protein:  10 + g.rng.IntN(50),
				Carbs:    20 + g.rng.IntN(60),
				Fats:     10 + g.rng.IntN(30),
			},
			Tags:         models.StringArray{tag},
			Ingredients:  append(models.StringArray(nil), d.ingredients...),
			Instructions: append(models.StringArray(nil), d.instructions...),
			PrepTime:     d.prepTime,
			CookTime:     d.cookTime,
			Servings:     d.servings,
		}
	}
	return out
}

// id derives a stable UUID so reseeding with the same seed is idempotent.
func (g *Generator) id(kind string, i int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("liqma/%d/%s/%d", g.seed, kind, i)))
}
