package assistant

import (
	"strings"

	"foodassistant/internal/models"
)

const (
	replyRecipeShopping = "For most recipes, you'll want to check what you have at home first. Common ingredients you might need from the grocery store include fresh vegetables, proteins like chicken or fish, cooking oils, and seasonings. Would you like me to suggest a specific recipe and shopping list?"
	replyHealthy        = "🥗 Great choice for healthy eating! For quick healthy options, Subway has fresh veggie subs with lots of nutrients. If you want to cook at home, Whole Foods has excellent organic produce - try making a colorful salad with spinach, tomatoes, cucumbers, and grilled chicken. What type of healthy flavors do you enjoy?"
	replyQuick          = "⚡ When you need something fast, McDonald's delivers in 15-25 minutes, or Domino's pizza in 20-30 minutes. For super quick home cooking, try scrambled eggs (5 min), instant oatmeal, or a simple sandwich. Are you looking to order out or cook something quick?"
	replyChicken        = "🍗 Chicken is so versatile! You could order Chicken McNuggets from McDonald's, get a Chicken Teriyaki sub from Subway, or grab fresh chicken from Kroger to make homemade dishes like chicken stir-fry, grilled chicken salad, or chicken pasta. What cooking method sounds good to you?"
	replyComfort        = "🍲 Nothing beats comfort food! Domino's pizza is always cozy and satisfying. For homemade comfort, try making mac and cheese, chicken soup, or grilled cheese with tomato soup using ingredients from Walmart. What kind of comfort food makes you feel best?"
	replyVegetarian     = "🌱 Lots of delicious vegetarian options! Subway has great veggie subs, and you can create amazing plant-based meals with fresh produce from Whole Foods - think vegetable stir-fry, caprese salad, pasta primavera, or veggie burgers. Any particular vegetables you love?"
	replyPizza          = "🍕 Pizza is always a great choice! Domino's has classic pepperoni, specialty pizzas, and sides like wings and breadsticks. They deliver in 20-30 minutes. What's your favorite pizza style - classic pepperoni, meat lovers, or maybe something with veggies?"
	replyBreakfast      = "🌅 Good morning! For quick breakfast, McDonald's has Egg McMuffins and hash browns. For home cooking, you could get eggs, bread, and fresh fruit from Kroger to make scrambled eggs, toast, and fruit salad. What kind of breakfast gives you energy for the day?"
	replyDinner         = "🌆 For dinner, you have great options! Order a satisfying meal from Domino's or Subway, or cook something special with ingredients from the grocery stores. Popular dinner ideas include pasta dishes, grilled proteins with vegetables, or hearty soups. What sounds appealing for tonight?"
	replyCooking        = "👩‍🍳 I'd love to help you cook! First, what dish are you thinking about making? Once I know that, I can suggest the ingredients you'll need and which grocery store would be best for shopping - Kroger for everyday ingredients, Whole Foods for organic options, or Walmart for budget-friendly choices."
	replyOrdering       = "🚚 Ready to order? You can get food delivered from McDonald's (15-25 min), Domino's (20-30 min), or Subway (10-20 min). Or if you want to cook, you can order groceries from Walmart, Kroger, or Whole Foods. What type of meal are you in the mood for?"
	replyGeneric        = "I'm here to help you with all things food! 🍴 Whether you want to order from restaurants like McDonald's, Domino's, or Subway, or cook at home with ingredients from Walmart, Kroger, or Whole Foods, I can guide you. What are you in the mood for today?"
)

// Order matters: "chicken" must lose to "healthy", "cook" must lose to "dinner".
var chatRules = ruleTable[string]{
	rules: []rule[string]{
		{keywords: []string{"healthy", "salad", "nutrition"}, result: replyHealthy},
		{keywords: []string{"quick", "fast", "hurry"}, result: replyQuick},
		{keywords: []string{"chicken"}, result: replyChicken},
		{keywords: []string{"comfort", "cozy", "warm"}, result: replyComfort},
		{keywords: []string{"vegetarian", "veggie", "plant"}, result: replyVegetarian},
		{keywords: []string{"pizza", "domino"}, result: replyPizza},
		{keywords: []string{"breakfast", "morning"}, result: replyBreakfast},
		{keywords: []string{"dinner", "evening"}, result: replyDinner},
		{keywords: []string{"ingredients", "cook", "recipe"}, result: replyCooking},
		{keywords: []string{"order", "delivery"}, result: replyOrdering},
	},
	fallback: replyGeneric,
}

// follow-up questions after a recipe was discussed
var recipeFollowUp = rule[string]{
	keywords: []string{"ingredients", "what", "need"},
	result:   replyRecipeShopping,
}

// FallbackReply answers a chat message without a remote provider. The last
// history entry is consulted first so a follow-up to a recipe discussion
// gets a shopping answer.
func FallbackReply(message string, history []models.ChatTurn) string {
	msg := strings.ToLower(message)

	if n := len(history); n > 0 {
		last := strings.ToLower(history[n-1].Content)
		if strings.Contains(last, "recipe") && recipeFollowUp.matches(msg) {
			return recipeFollowUp.result
		}
	}

	return chatRules.classify(msg)
}
