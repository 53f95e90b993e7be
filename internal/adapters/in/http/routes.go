package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterHandlers mounts the API under /api/v1 and the health check.
func RegisterHandlers(e *echo.Echo, s *Server) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.GET("/cart", s.GetCart)
	api.DELETE("/cart", s.ClearCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PUT("/cart/items/:dishId", s.UpdateCartItem)
	api.DELETE("/cart/items/:dishId", s.RemoveCartItem)
	api.POST("/cart/conflict", s.ResolveCartConflict)
	api.POST("/cart/checkout", s.CheckoutCart)

	api.GET("/suppliers/:supplierId/board", s.GetStatusBoard)
	api.GET("/suppliers/:supplierId/board/snapshot", s.GetStatusBoardSnapshot)

	api.POST("/orders/:orderId/transitions", s.ChangeOrderStatus)
	api.POST("/orders/:orderId/override", s.OverrideOrderStatus)
	api.GET("/orders/:orderId/summary", s.GetOrderSummary)
	api.GET("/orders/:orderId/summary/qrcode", s.GetOrderSummaryQRCode)
	api.GET("/orders/:orderId/history", s.GetOrderHistory)
}
