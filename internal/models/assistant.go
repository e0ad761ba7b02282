package models

// Preferences is the caller-defined description of what the user wants to eat.
// Any JSON value is accepted (object, string, array) and forwarded to the
// recommender untouched.
type Preferences interface{}

// Recommendation is a single ranked suggestion from the recommender
type Recommendation struct {
	Name        string  `json:"name"`
	Restaurant  string  `json:"restaurant"`
	Price       float64 `json:"price"`
	MatchReason string  `json:"matchReason"`
}

// ChatTurn is one entry of the conversation history sent by the client
type ChatTurn struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// IsUser reports whether the turn was written by the user
func (t ChatTurn) IsUser() bool {
	return t.Type == "user"
}

// Dietary flags
const (
	FlagContainsMeat       = "contains-meat"
	FlagContainsDairy      = "contains-dairy"
	FlagVegetarianFriendly = "vegetarian-friendly"
)

// Nutrition holds per-serving estimates
type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// DietaryAnalysis is the result of analyzing an ingredient list
type DietaryAnalysis struct {
	Nutrition
	DietaryFlags []string `json:"dietaryFlags"`
}
