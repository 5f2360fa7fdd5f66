package consts

const (
	RecipeLikeCountKey    = "recipe:like:count:"
	RecipeViewCountKey    = "recipe:view:count:"
	RecipeCommentCountKey = "recipe:comment:count:"
	TrendingRecipesKey    = "recipe:trending:list"
	TokenBlacklistKey     = "token:blacklist:"
)

const (
	CalorieResetLock = "calorie:reset:lock"
)
