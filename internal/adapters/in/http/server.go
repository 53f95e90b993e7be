package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SessionHeader carries the cart session id.
const SessionHeader = "X-Cart-Session"

const defaultQRSize = 256

// BoardCache is the polled board state kept by the refresh job.
type BoardCache interface {
	Watch(supplierID kernel.UUID)
	Invalidate(supplierID kernel.UUID)
	Snapshot(supplierID kernel.UUID) (jobs.BoardSnapshot, bool)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	AddCartItem         commands.AddCartItemCommandHandler
	ResolveCartConflict commands.ResolveCartConflictCommandHandler
	UpdateCartItem      commands.UpdateCartItemCommandHandler
	ClearCart           commands.ClearCartCommandHandler
	CheckoutCart        commands.CheckoutCartCommandHandler
	ChangeOrderStatus   commands.ChangeOrderStatusCommandHandler
	OverrideOrderStatus commands.OverrideOrderStatusCommandHandler

	GetCart         queries.GetCartQueryHandler
	GetStatusBoard  queries.GetStatusBoardQueryHandler
	GetOrderSummary queries.GetOrderSummaryQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
}

// Server serves the REST API registered by RegisterHandlers and hands each
// request to its use case handler.
type Server struct {
	handlers Handlers
	boards   BoardCache
	qrcodes  QRCodeRenderer
	logger   *slog.Logger
}

// QRCodeRenderer renders a summary link as a PNG.
type QRCodeRenderer interface {
	QRCode(link string, size int) ([]byte, error)
}

// NewServer creates a new HTTP server. boards may be nil, in which case
// board snapshots are unavailable.
func NewServer(handlers Handlers, boards BoardCache, qrcodes QRCodeRenderer, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		boards:   boards,
		qrcodes:  qrcodes,
		logger:   logger.With("component", "http"),
	}
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	query, err := queries.NewGetCartQuery(session(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

// AddCartItem handles POST /api/v1/cart/items. A dish from another supplier
// answers 409 and leaves the candidate pending.
func (s *Server) AddCartItem(ctx echo.Context) error {
	var req AddCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	dish, err := dishToDomain(req.Dish)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAddCartItemCommand(session(ctx), dish, req.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	if candidate, pending := result.Outcome.Candidate(); pending {
		return ctx.JSON(http.StatusConflict, SupplierConflict{
			Code:      http.StatusConflict,
			Message:   "Cart holds dishes from another supplier; confirm to replace it",
			Candidate: cartItemFromDomain(candidate),
			Cart:      cartFromDomain(result.Cart),
		})
	}

	return ctx.JSON(http.StatusOK, cartFromDomain(result.Cart))
}

// ResolveCartConflict handles POST /api/v1/cart/conflict.
func (s *Server) ResolveCartConflict(ctx echo.Context) error {
	var req ResolveConflictRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResolveCartConflictCommand(session(ctx), req.Confirmed)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.ResolveCartConflict.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

// UpdateCartItem handles PUT /api/v1/cart/items/:dishId.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	var req UpdateCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return s.setQuantity(ctx, req.Quantity)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:dishId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	return s.setQuantity(ctx, 0)
}

func (s *Server) setQuantity(ctx echo.Context, quantity int) error {
	dishID, err := kernel.UUIDFromString(ctx.Param("dishId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCartItemCommand(session(ctx), dishID, quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.UpdateCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	cmd, err := commands.NewClearCartCommand(session(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.ClearCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

// CheckoutCart handles POST /api/v1/cart/checkout.
func (s *Server) CheckoutCart(ctx echo.Context) error {
	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	mode, err := order.ParseFulfillmentMode(req.FulfillmentMode)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCheckoutCartCommand(session(ctx), kernel.NewUUID(), order.Placement{
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		Mode:            mode,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CheckoutCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.invalidate(o.Supplier().ID())
	return ctx.JSON(http.StatusCreated, orderFromDomain(o))
}

// GetStatusBoard handles GET /api/v1/suppliers/:supplierId/board. The
// supplier is watched by the refresh job from then on.
func (s *Server) GetStatusBoard(ctx echo.Context) error {
	supplierID, err := kernel.UUIDFromString(ctx.Param("supplierId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetStatusBoardQuery(supplierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	board, err := s.handlers.GetStatusBoard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	if s.boards != nil {
		s.boards.Watch(supplierID)
	}
	return ctx.JSON(http.StatusOK, boardFromDomain(supplierID.String(), board))
}

// GetStatusBoardSnapshot handles GET /api/v1/suppliers/:supplierId/board/snapshot,
// the last board polled by the refresh job.
func (s *Server) GetStatusBoardSnapshot(ctx echo.Context) error {
	supplierID, err := kernel.UUIDFromString(ctx.Param("supplierId"))
	if err != nil {
		return s.fail(ctx, err)
	}
	if s.boards == nil {
		return s.fail(ctx, errs.NewObjectNotFoundError("board snapshot", supplierID.String()))
	}

	s.boards.Watch(supplierID)
	snapshot, ok := s.boards.Snapshot(supplierID)
	if !ok {
		return s.fail(ctx, errs.NewObjectNotFoundError("board snapshot", supplierID.String()))
	}

	return ctx.JSON(http.StatusOK, snapshotFromDomain(supplierID.String(), snapshot))
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderId/transitions.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(req.Target)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.invalidate(o.Supplier().ID())
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// OverrideOrderStatus handles POST /api/v1/orders/:orderId/override.
func (s *Server) OverrideOrderStatus(ctx echo.Context) error {
	var req OverrideRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(req.Target)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewOverrideOrderStatusCommand(orderID, target, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.OverrideOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.invalidate(o.Supplier().ID())
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// GetOrderSummary handles GET /api/v1/orders/:orderId/summary.
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	summary, err := s.summary(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderSummary{
		OrderID: summary.OrderID.String(),
		Phone:   summary.Phone,
		Message: summary.Message,
		Link:    summary.Link,
	})
}

// GetOrderSummaryQRCode handles GET /api/v1/orders/:orderId/summary/qrcode.
// The optional size query parameter is the image edge in pixels.
func (s *Server) GetOrderSummaryQRCode(ctx echo.Context) error {
	size := defaultQRSize
	if raw := ctx.QueryParam("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "size must be an integer")
		}
		size = parsed
	}

	summary, err := s.summary(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	if summary.Link == "" {
		return s.fail(ctx, errs.NewValueIsRequiredError("customerContact"))
	}

	png, err := s.qrcodes.QRCode(summary.Link, size)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.Blob(http.StatusOK, "image/png", png)
}

func (s *Server) summary(ctx echo.Context) (queries.GetOrderSummaryQueryResponse, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return queries.GetOrderSummaryQueryResponse{}, err
	}

	query, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return queries.GetOrderSummaryQueryResponse{}, err
	}

	return s.handlers.GetOrderSummary.Handle(ctx.Request().Context(), query)
}

// GetOrderHistory handles GET /api/v1/orders/:orderId/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	history, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyFromDomain(history))
}

func (s *Server) invalidate(supplierID kernel.UUID) {
	if s.boards != nil {
		s.boards.Invalidate(supplierID)
	}
}

func session(ctx echo.Context) string {
	return strings.TrimSpace(ctx.Request().Header.Get(SessionHeader))
}

func dishToDomain(d Dish) (catalog.Dish, error) {
	supplierID, err := kernel.UUIDFromString(d.Supplier.ID)
	if err != nil {
		return catalog.Dish{}, err
	}
	supplier, err := catalog.NewSupplier(supplierID, d.Supplier.Name)
	if err != nil {
		return catalog.Dish{}, err
	}

	dishID, err := kernel.UUIDFromString(d.ID)
	if err != nil {
		return catalog.Dish{}, err
	}
	price, err := kernel.NewMoney(d.PriceCents)
	if err != nil {
		return catalog.Dish{}, err
	}

	return catalog.NewDish(dishID, d.Name, price, d.ImageURL, supplier)
}
