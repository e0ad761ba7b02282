package assistant

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"foodassistant/internal/models"
)

var (
	meatIngredients       = []string{"beef", "chicken", "pepperoni", "salami", "ham"}
	dairyIngredients      = []string{"cheese"}
	vegetarianIngredients = []string{"lettuce", "tomatoes", "vegetables", "bread", "cheese"}
)

// NutritionEstimator produces per-serving nutrition numbers for an ingredient list
type NutritionEstimator interface {
	Estimate(ingredients []string) models.Nutrition
}

// PlaceholderEstimator returns random numbers within fixed ranges. It is NOT a
// nutrition computation and its output is not deterministic; it only fills the
// slot a real nutrition backend would occupy.
type PlaceholderEstimator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPlaceholderEstimator seeds the estimator. Pass 0 to seed from the clock.
func NewPlaceholderEstimator(seed int64) *PlaceholderEstimator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PlaceholderEstimator{rnd: rand.New(rand.NewSource(seed))}
}

func (e *PlaceholderEstimator) Estimate(ingredients []string) models.Nutrition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return models.Nutrition{
		Calories: e.rnd.Intn(500) + 200,
		Protein:  e.rnd.Intn(30) + 10,
		Carbs:    e.rnd.Intn(50) + 20,
		Fat:      e.rnd.Intn(25) + 5,
	}
}

// IngredientAnalyzer derives dietary flags and a nutrition estimate
type IngredientAnalyzer struct {
	estimator NutritionEstimator
}

// NewIngredientAnalyzer creates an analyzer backed by estimator
func NewIngredientAnalyzer(estimator NutritionEstimator) *IngredientAnalyzer {
	return &IngredientAnalyzer{estimator: estimator}
}

// Analyze returns the nutrition estimate and dietary flags for ingredients
func (a *IngredientAnalyzer) Analyze(ingredients []string) models.DietaryAnalysis {
	return models.DietaryAnalysis{
		Nutrition:    a.estimator.Estimate(ingredients),
		DietaryFlags: DietaryFlags(ingredients),
	}
}

// DietaryFlags classifies ingredients by case-insensitive substring match.
// vegetarian-friendly requires every ingredient to match the vegetarian list.
func DietaryFlags(ingredients []string) []string {
	flags := make([]string, 0, 3)

	if anyMatches(ingredients, meatIngredients) {
		flags = append(flags, models.FlagContainsMeat)
	}
	if anyMatches(ingredients, dairyIngredients) {
		flags = append(flags, models.FlagContainsDairy)
	}
	if allMatch(ingredients, vegetarianIngredients) {
		flags = append(flags, models.FlagVegetarianFriendly)
	}
	return flags
}

func containsAny(ingredient string, vocabulary []string) bool {
	lower := strings.ToLower(ingredient)
	for _, word := range vocabulary {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func anyMatches(ingredients, vocabulary []string) bool {
	for _, ing := range ingredients {
		if containsAny(ing, vocabulary) {
			return true
		}
	}
	return false
}

func allMatch(ingredients, vocabulary []string) bool {
	for _, ing := range ingredients {
		if !containsAny(ing, vocabulary) {
			return false
		}
	}
	return true
}
