package router

import (
	"fairTune/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupListenerRoutes(api *echo.Group, handler *rest.ListenerHandler, authRequired echo.MiddlewareFunc) {
	listeners := api.Group("/listeners")

	listeners.POST("/register", handler.Register)
	listeners.POST("/login", handler.Login)

	listeners.POST("/logout", handler.Logout, authRequired)
	listeners.GET("/me", handler.Me, authRequired)
	listeners.PUT("/me/clean-only", handler.SetCleanOnly, authRequired)
	listeners.POST("/me/history", handler.ImportHistory, authRequired)
	listeners.GET("/me/history/share", handler.HistoryShareCode, authRequired)
	listeners.POST("/me/history/redeem", handler.RedeemHistoryShareCode, authRequired)
}

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.DebugRecommend)
	reco.POST("/feedback", handler.Feedback)
	reco.GET("/exploration-rate", handler.ExplorationRate)
}

func SetupEvaluationRoutes(api *echo.Group, handler *rest.EvaluationHandler, authRequired echo.MiddlewareFunc) {
	eval := api.Group("/evaluation", authRequired)

	eval.GET("/summary", handler.Summary)
	eval.POST("/archive/save", handler.SaveArchive)
	eval.POST("/archive/load", handler.LoadArchive)
}

func SetupCatalogRoutes(api *echo.Group, catalogHandler *rest.CatalogHandler, contextHandler *rest.ContextHandler) {
	api.GET("/candidates", catalogHandler.GetCandidates)

	ctx := api.Group("/context")
	ctx.GET("/moods", contextHandler.Moods)
	ctx.GET("/activities", contextHandler.Activities)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.RerankAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)

	admin.GET("/rerank/config", handler.GetConfig)
	admin.PUT("/rerank/config", handler.UpsertConfig)
	admin.PUT("/candidates", handler.ReplaceCandidates)
}
