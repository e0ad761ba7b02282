package assistant

import (
	"testing"

	"foodassistant/internal/models"

	"github.com/stretchr/testify/assert"
)

type fixedEstimator models.Nutrition

func (f fixedEstimator) Estimate([]string) models.Nutrition {
	return models.Nutrition(f)
}

func TestDietaryFlags(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		want        []string
	}{
		{"dairy and vegetarian", []string{"cheese", "lettuce"}, []string{models.FlagContainsDairy, models.FlagVegetarianFriendly}},
		{"meat", []string{"beef patty", "bun"}, []string{models.FlagContainsMeat}},
		{"case insensitive", []string{"Pepperoni", "Mozzarella CHEESE"}, []string{models.FlagContainsMeat, models.FlagContainsDairy}},
		{"unknown vegetable is not vegetarian", []string{"lettuce", "onion"}, []string{}},
		{"empty list", []string{}, []string{models.FlagVegetarianFriendly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DietaryFlags(tt.ingredients))
		})
	}
}

func TestAnalyze(t *testing.T) {
	analyzer := NewIngredientAnalyzer(fixedEstimator{Calories: 300, Protein: 20, Carbs: 40, Fat: 10})

	got := analyzer.Analyze([]string{"chicken", "bread"})

	assert.Equal(t, 300, got.Calories)
	assert.Equal(t, 10, got.Fat)
	assert.Equal(t, []string{models.FlagContainsMeat}, got.DietaryFlags)
}

func TestPlaceholderEstimatorRanges(t *testing.T) {
	estimator := NewPlaceholderEstimator(42)

	for i := 0; i < 200; i++ {
		n := estimator.Estimate(nil)
		assert.GreaterOrEqual(t, n.Calories, 200)
		assert.LessOrEqual(t, n.Calories, 699)
		assert.GreaterOrEqual(t, n.Protein, 10)
		assert.LessOrEqual(t, n.Protein, 39)
		assert.GreaterOrEqual(t, n.Carbs, 20)
		assert.LessOrEqual(t, n.Carbs, 69)
		assert.GreaterOrEqual(t, n.Fat, 5)
		assert.LessOrEqual(t, n.Fat, 29)
	}
}
