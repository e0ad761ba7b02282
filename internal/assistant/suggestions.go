package assistant

// Follow-up prompt sets offered after an assistant reply
var (
	RecipeFollowUps = []string{
		"What ingredients do I need?",
		"Where can I buy these ingredients?",
		"Show me a simpler recipe",
	}
	OrderingFollowUps = []string{
		"Show me the menu",
		"How long is delivery?",
		"Place an order for me",
	}
	NutritionFollowUps = []string{
		"Analyze the ingredients",
		"Show me low-calorie options",
		"What makes a balanced meal?",
	}
	GenericFollowUps = []string{
		"Recommend something for dinner",
		"I want something healthy",
		"Help me cook at home",
	}
)

var suggestionRules = ruleTable[[]string]{
	rules: []rule[[]string]{
		{keywords: []string{"recipe", "cook"}, result: RecipeFollowUps},
		{keywords: []string{"restaurant", "order"}, result: OrderingFollowUps},
		{keywords: []string{"healthy", "nutrition"}, result: NutritionFollowUps},
	},
	fallback: GenericFollowUps,
}

// Suggest picks the follow-up prompts for a chat turn. Only the assistant's
// response is classified; the user message does not influence the result.
func Suggest(userMessage, assistantResponse string) []string {
	set := suggestionRules.classify(assistantResponse)
	return append([]string(nil), set...)
}
