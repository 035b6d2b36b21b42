package internal

import (
	"net/http"

	"credd/internal/controllers"
	"credd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, logger providers.Logger) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider(logger)

	routers.Post("/analyze", http.HandlerFunc(apiController.Analyze))
	routers.Get("/history", http.HandlerFunc(apiController.History))
	routers.Get("/stats", http.HandlerFunc(apiController.Stats))
	routers.Get("/scan", http.HandlerFunc(apiController.Scan))
	routers.Get("/scan/feedback", http.HandlerFunc(apiController.ScanFeedback))
	routers.Post("/feedback", http.HandlerFunc(apiController.Feedback))
	routers.Get("/cache/stats", http.HandlerFunc(apiController.CacheStats))
	routers.Delete("/cache/clear", http.HandlerFunc(apiController.CacheClear))
	return routers
}
