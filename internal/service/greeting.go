package service

import "time"

var foodFacts = []string{
	"Did you know? Honey never spoils!",
	"Fun fact: Bananas are berries, but strawberries aren't!",
	"Tip: Adding salt to coffee reduces bitterness",
	"Did you know? Tomatoes were once considered poisonous",
	"Fun fact: Carrots were originally purple, not orange!",
	"Tip: Room temperature butter spreads better on bread",
	"Did you know? Apples float because 25% of their volume is air",
	"Fun fact: Peanuts aren't actually nuts - they're legumes!",
	"Tip: Adding a pinch of sugar to tomato sauce balances acidity",
	"Did you know? Chocolate was once used as currency",
	"Fun fact: Pineapples take 2-3 years to grow",
	"Tip: Soaking onions in cold water reduces their pungency",
	"Did you know? The world's oldest recipe is for beer",
	"Fun fact: Avocados are fruits, not vegetables!",
	"Tip: Adding lemon juice prevents apples from browning",
}

// Greeting picks the home header greeting for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "Good Morning"
	case h >= 12 && h < 17:
		return "Good Afternoon"
	case h >= 17 && h < 21:
		return "Good Evening"
	default:
		return "Good Night"
	}
}
