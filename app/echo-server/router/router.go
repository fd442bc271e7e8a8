package router

import (
	"viralWallet/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.GET("/email-verification/:code", handler.VerifyEmail)

	users.PUT("/:id", handler.UpdateUser, authRequired)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired)
	users.PATCH("/:id/status", handler.SetStatus, authRequired, adminOnly)
}

func SetupServiceRoutes(api *echo.Group, handler *rest.ServicesHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	services := api.Group("/services")

	services.GET("", handler.ListActive, authRequired)
	services.GET("/all", handler.ListAll, authRequired, adminOnly)
	services.GET("/:id", handler.GetServiceByID, authRequired)
	services.POST("", handler.CreateService, authRequired, adminOnly)
	services.PUT("/:id", handler.UpdateService, authRequired, adminOnly)
	services.DELETE("/:id", handler.DeleteService, authRequired, adminOnly)
}

func SetupOrderRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("", handler.CreateOrder)
	orders.GET("", handler.ListOwn)
	orders.GET("/all", handler.ListAll, adminOnly)
	orders.GET("/:id", handler.GetOrderByID)
	orders.PATCH("/:id/status", handler.SetStatus, adminOnly)
}

func SetupWalletRoutes(api *echo.Group, handler *rest.WalletHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	wallet := api.Group("/wallet", authRequired)

	wallet.GET("/balance", handler.GetBalance)
	wallet.POST("/requests", handler.CreateRequest)
	wallet.GET("/requests", handler.ListOwn)
	wallet.GET("/requests/all", handler.ListAll, adminOnly)
	wallet.POST("/requests/:id/approve", handler.Approve, adminOnly)
	wallet.POST("/requests/:id/decline", handler.Decline, adminOnly)
	wallet.POST("/users/:id/credit", handler.Credit, adminOnly)
	wallet.POST("/users/:id/debit", handler.Debit, adminOnly)
}

func SetupSupportRoutes(api *echo.Group, handler *rest.SupportHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	tickets := api.Group("/tickets", authRequired)

	tickets.POST("", handler.CreateTicket)
	tickets.GET("", handler.ListOwn)
	tickets.GET("/all", handler.ListAll, adminOnly)
	tickets.POST("/:id/close", handler.CloseTicket, adminOnly)
}
