package routes

import (
	"net/http"

	"github.com/collecokzn-creator/colleco-mvp-sub004/ai"
	"github.com/collecokzn-creator/colleco-mvp-sub004/auth"
	"github.com/collecokzn-creator/colleco-mvp-sub004/basket"
	"github.com/collecokzn-creator/colleco-mvp-sub004/itinerary"
	"github.com/collecokzn-creator/colleco-mvp-sub004/messages"
	"github.com/collecokzn-creator/colleco-mvp-sub004/middleware"
	"github.com/collecokzn-creator/colleco-mvp-sub004/notify"
	"github.com/collecokzn-creator/colleco-mvp-sub004/quotes"
	"github.com/collecokzn-creator/colleco-mvp-sub004/ratelim"
	"github.com/collecokzn-creator/colleco-mvp-sub004/settings"
	"github.com/collecokzn-creator/colleco-mvp-sub004/utils"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

// The AI surface carries its own tighter limiter inside the handlers, so
// these routes only get the shared per-IP one.
func AddAIRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/ai/itinerary", rl.Limit(ai.GenerateItinerary))
	router.POST("/api/ai/itinerary/refine", rl.Limit(ai.RefineItinerary))
	router.GET("/api/ai/itinerary/stream", middleware.OptionalAuth(ai.StreamItinerary))
	router.POST("/api/ai/intent", rl.Limit(ai.ParseIntent))
	router.POST("/api/ai/flight", rl.Limit(ai.ParseFlightIntent))
	router.GET("/api/ai/metrics", ai.GetMetrics)
	router.GET("/api/ai/metrics/history", ai.GetMetricsHistory)

	router.POST("/api/ai/session", rl.Limit(middleware.OptionalAuth(ai.CreateSession)))
	router.POST("/api/ai/session/:id/refine", rl.Limit(middleware.OptionalAuth(ai.RefineSession)))
	router.GET("/api/ai/session/:id", middleware.OptionalAuth(ai.GetSession))

	router.POST("/api/ai/draft", rl.Limit(middleware.OptionalAuth(ai.CreateDraft)))
	router.GET("/api/ai/draft/:id", middleware.OptionalAuth(ai.GetDraft))
}

func AddItineraryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/itineraries", middleware.OptionalAuth(itinerary.GetItineraries))
	router.GET("/api/itineraries/search", rl.Limit(itinerary.SearchItineraries))
	router.POST("/api/itineraries", middleware.Authenticate(itinerary.CreateItinerary))
	router.POST("/api/itinerary/import-draft", middleware.Authenticate(itinerary.ImportDraft))
	router.GET("/api/itineraries/all/:id", middleware.OptionalAuth(itinerary.GetItinerary))
	router.PUT("/api/itineraries/:id", middleware.Authenticate(itinerary.UpdateItinerary))
	router.DELETE("/api/itineraries/:id", middleware.Authenticate(itinerary.DeleteItinerary))
	router.POST("/api/itineraries/:id/fork", middleware.Authenticate(itinerary.ForkItinerary))
	router.PUT("/api/itineraries/:id/publish", middleware.Authenticate(itinerary.PublishItinerary))
}

func AddBasketRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/basket", rl.Limit(middleware.Authenticate(basket.AddToBasket)))
	router.GET("/api/basket", middleware.Authenticate(basket.GetBasket))
	router.PUT("/api/basket", middleware.Authenticate(basket.UpdateBasket))
	router.GET("/api/basket/summary", middleware.Authenticate(basket.BasketSummary))
	router.DELETE("/api/basket/clear", middleware.Authenticate(basket.ClearBasket))
	router.DELETE("/api/basket/item/:itemId", middleware.Authenticate(basket.RemoveFromBasket))
}

func AddQuoteRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/quotes", rl.Limit(middleware.Authenticate(quotes.CreateQuote)))
	router.GET("/api/quotes", middleware.Authenticate(quotes.GetQuotes))
	router.GET("/api/quotes/:id", middleware.Authenticate(quotes.GetQuote))
	router.POST("/api/quotes/:id/items", middleware.Authenticate(quotes.AddQuoteItem))
	router.PUT("/api/quotes/:id/status", middleware.Authenticate(quotes.UpdateQuoteStatus))
	router.DELETE("/api/quotes/:id", middleware.Authenticate(quotes.DeleteQuote))
}

func AddMessageRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/conversations", rl.Limit(middleware.Authenticate(messages.StartConversation)))
	router.GET("/api/conversations", middleware.Authenticate(messages.GetConversations))
	router.GET("/api/conversations/:id/messages", middleware.Authenticate(messages.GetMessages))
	router.POST("/api/conversations/:id/messages", rl.Limit(middleware.Authenticate(messages.SendMessage)))
	router.PUT("/api/conversations/:id/messages/:msgid/read", middleware.Authenticate(messages.MarkMessageRead))
	router.DELETE("/api/conversations/:id/messages/:msgid", middleware.Authenticate(messages.DeleteMessage))
}

func AddSettingsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/settings/all", middleware.Authenticate(settings.GetUserSettings))
	router.POST("/api/settings/init", middleware.Authenticate(settings.InitUserSettings))
	router.PUT("/api/settings/setting/:type", rl.Limit(middleware.Authenticate(settings.UpdateUserSetting)))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/notify", notify.WebSocketHandler(hub))
}

func AddUtilityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/csrf", rl.Limit(utils.CSRF))
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Write([]byte("200"))
	})
}

func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter) {
	AddAuthRoutes(router, rl)
	AddAIRoutes(router, rl)
	AddItineraryRoutes(router, rl)
	AddBasketRoutes(router, rl)
	AddQuoteRoutes(router, rl)
	AddMessageRoutes(router, rl)
	AddSettingsRoutes(router, rl)
	AddUtilityRoutes(router, rl)
}
