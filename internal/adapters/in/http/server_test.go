package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/whatsapp"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ServerTestSuite struct {
	suite.Suite
	echo   *echo.Echo
	carts  *memoryCartStorage
	orders *memoryOrders
	boards *recordingBoardCache

	ana httpadapter.Supplier
	bia httpadapter.Supplier
}

func (suite *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC) }

	suite.carts = newMemoryCartStorage()
	suite.orders = newMemoryOrders()
	suite.boards = &recordingBoardCache{snapshots: make(map[kernel.UUID]jobs.BoardSnapshot)}

	sessions := commands.NewSessionLocks()
	inFlight := commands.NewInFlightOrders()
	cmdUoW := commandUoWFactory{orders: suite.orders}
	queryUoW := queryUoWFactory{orders: suite.orders}
	links := whatsapp.NewLinkBuilder("")

	handlers := httpadapter.Handlers{
		AddCartItem:         commands.NewAddCartItemCommandHandler(suite.carts, sessions, nil),
		ResolveCartConflict: commands.NewResolveCartConflictCommandHandler(suite.carts, sessions),
		UpdateCartItem:      commands.NewUpdateCartItemCommandHandler(suite.carts, sessions),
		ClearCart:           commands.NewClearCartCommandHandler(suite.carts, sessions),
		CheckoutCart:        commands.NewCheckoutCartCommandHandler(suite.carts, sessions, cmdUoW, now, logger),
		ChangeOrderStatus:   commands.NewChangeOrderStatusCommandHandler(cmdUoW, inFlight, now),
		OverrideOrderStatus: commands.NewOverrideOrderStatusCommandHandler(cmdUoW, inFlight, now, logger),
		GetCart:             queries.NewGetCartQueryHandler(suite.carts),
		GetStatusBoard:      queries.NewGetStatusBoardQueryHandler(queryUoW),
		GetOrderSummary: queries.NewGetOrderSummaryQueryHandler(
			queryUoW, services.NewSummaryFormatter(time.UTC), links, now),
		GetOrderHistory: queries.NewGetOrderHistoryQueryHandler(suite.unreachableDB()),
	}

	suite.echo = echo.New()
	httpadapter.RegisterHandlers(suite.echo, httpadapter.NewServer(handlers, suite.boards, links, logger))

	suite.ana = httpadapter.Supplier{ID: kernel.NewUUID().String(), Name: "Cozinha da Ana"}
	suite.bia = httpadapter.Supplier{ID: kernel.NewUUID().String(), Name: "Bia Doces"}
}

// unreachableDB is a gorm handle whose queries fail to connect.
func (suite *ServerTestSuite) unreachableDB() *gorm.DB {
	db, err := gorm.Open(
		gorm_postgres.Open("host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable connect_timeout=1"),
		&gorm.Config{DisableAutomaticPing: true},
	)
	suite.Require().NoError(err)
	return db
}

func (suite *ServerTestSuite) do(method, path, session string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if session != "" {
		req.Header.Set(httpadapter.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) decode(rec *httptest.ResponseRecorder, into any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), into), rec.Body.String())
}

func (suite *ServerTestSuite) dish(supplier httpadapter.Supplier, name string, cents int64) httpadapter.Dish {
	return httpadapter.Dish{ID: kernel.NewUUID().String(), Name: name, PriceCents: cents, Supplier: supplier}
}

func (suite *ServerTestSuite) addItem(session string, dish httpadapter.Dish, qty int) *httptest.ResponseRecorder {
	return suite.do(http.MethodPost, "/api/v1/cart/items", session,
		httpadapter.AddCartItemRequest{Dish: dish, Quantity: qty})
}

func (suite *ServerTestSuite) checkout(session string, req httpadapter.CheckoutRequest) httpadapter.Order {
	rec := suite.do(http.MethodPost, "/api/v1/cart/checkout", session, req)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var o httpadapter.Order
	suite.decode(rec, &o)
	return o
}

func (suite *ServerTestSuite) placeOrder(mode string) httpadapter.Order {
	suite.Require().Equal(http.StatusOK, suite.addItem("s-order", suite.dish(suite.ana, "Feijoada", 1250), 2).Code)
	return suite.checkout("s-order", httpadapter.CheckoutRequest{
		CustomerName:    "Maria",
		CustomerContact: "+55 11 98888-7777",
		FulfillmentMode: mode,
		DeliveryAddress: "Rua das Flores, 10",
	})
}

func (suite *ServerTestSuite) TestHealth() {
	rec := suite.do(http.MethodGet, "/health", "", nil)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())
}

func (suite *ServerTestSuite) TestCart_WithoutSession_ReturnsBadRequest() {
	rec := suite.do(http.MethodGet, "/api/v1/cart", "", nil)

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestCart_AddMergeAndTotals() {
	feijoada := suite.dish(suite.ana, "Feijoada", 1250)

	suite.Require().Equal(http.StatusOK, suite.addItem("s-1", feijoada, 0).Code)
	rec := suite.addItem("s-1", feijoada, 2)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var c httpadapter.Cart
	suite.decode(rec, &c)
	suite.Require().Len(c.Items, 1)
	suite.Equal(3, c.Items[0].Quantity)
	suite.Equal(3, c.TotalItemCount)
	suite.Equal(int64(3750), c.TotalCents)
	suite.Equal("R$ 37,50", c.Total)
	suite.Require().NotNil(c.Supplier)
	suite.Equal(suite.ana.ID, c.Supplier.ID)

	rec = suite.do(http.MethodGet, "/api/v1/cart", "s-1", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(rec, &c)
	suite.Equal(3, c.TotalItemCount)
}

func (suite *ServerTestSuite) TestCart_OversizedQuantity_IsRejectedAndCartStaysUsable() {
	feijoada := suite.dish(suite.ana, "Feijoada", 1250)

	rec := suite.addItem("s-big", feijoada, math.MaxInt)
	suite.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	suite.Require().Equal(http.StatusOK, suite.addItem("s-big", feijoada, cart.MaxLineQuantity).Code)
	rec = suite.addItem("s-big", feijoada, 1)
	suite.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, "/api/v1/cart", "s-big", nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var c httpadapter.Cart
	suite.decode(rec, &c)
	suite.Equal(cart.MaxLineQuantity, c.TotalItemCount)
	suite.Equal(int64(cart.MaxLineQuantity*1250), c.TotalCents)
}

func (suite *ServerTestSuite) TestCart_CrossSupplierAdd_ConflictThenConfirm() {
	suite.Require().Equal(http.StatusOK, suite.addItem("s-1", suite.dish(suite.ana, "Feijoada", 1250), 2).Code)

	rec := suite.addItem("s-1", suite.dish(suite.bia, "Brigadeiro", 300), 5)
	suite.Require().Equal(http.StatusConflict, rec.Code)

	var conflict httpadapter.SupplierConflict
	suite.decode(rec, &conflict)
	suite.Equal("Brigadeiro", conflict.Candidate.Dish.Name)
	suite.Equal(suite.ana.ID, conflict.Cart.Supplier.ID)
	suite.Equal(2, conflict.Cart.TotalItemCount)

	rec = suite.do(http.MethodPost, "/api/v1/cart/conflict", "s-1", httpadapter.ResolveConflictRequest{Confirmed: true})
	suite.Require().Equal(http.StatusOK, rec.Code)

	var c httpadapter.Cart
	suite.decode(rec, &c)
	suite.Equal(suite.bia.ID, c.Supplier.ID)
	suite.Equal(5, c.TotalItemCount)
	suite.Nil(c.PendingConflict)

	rec = suite.do(http.MethodPost, "/api/v1/cart/conflict", "s-1", httpadapter.ResolveConflictRequest{Confirmed: true})
	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *ServerTestSuite) TestCart_CrossSupplierAdd_Declined_KeepsCart() {
	suite.Require().Equal(http.StatusOK, suite.addItem("s-1", suite.dish(suite.ana, "Feijoada", 1250), 2).Code)
	suite.Require().Equal(http.StatusConflict, suite.addItem("s-1", suite.dish(suite.bia, "Brigadeiro", 300), 1).Code)

	rec := suite.do(http.MethodPost, "/api/v1/cart/conflict", "s-1", httpadapter.ResolveConflictRequest{Confirmed: false})
	suite.Require().Equal(http.StatusOK, rec.Code)

	var c httpadapter.Cart
	suite.decode(rec, &c)
	suite.Equal(suite.ana.ID, c.Supplier.ID)
	suite.Equal(2, c.TotalItemCount)
}

func (suite *ServerTestSuite) TestCart_UpdateRemoveAndClear() {
	feijoada := suite.dish(suite.ana, "Feijoada", 1250)
	suco := suite.dish(suite.ana, "Suco", 500)
	suite.Require().Equal(http.StatusOK, suite.addItem("s-1", feijoada, 1).Code)
	suite.Require().Equal(http.StatusOK, suite.addItem("s-1", suco, 1).Code)

	rec := suite.do(http.MethodPut, "/api/v1/cart/items/"+feijoada.ID, "s-1", httpadapter.UpdateCartItemRequest{Quantity: 4})
	suite.Require().Equal(http.StatusOK, rec.Code)
	var c httpadapter.Cart
	suite.decode(rec, &c)
	suite.Equal(5, c.TotalItemCount)

	rec = suite.do(http.MethodDelete, "/api/v1/cart/items/"+suco.ID, "s-1", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(rec, &c)
	suite.Equal(4, c.TotalItemCount)

	rec = suite.do(http.MethodPut, "/api/v1/cart/items/"+suco.ID, "s-1", httpadapter.UpdateCartItemRequest{Quantity: 2})
	suite.Equal(http.StatusNotFound, rec.Code)

	rec = suite.do(http.MethodPut, "/api/v1/cart/items/not-a-uuid", "s-1", httpadapter.UpdateCartItemRequest{Quantity: 2})
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodDelete, "/api/v1/cart", "s-1", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var cleared httpadapter.Cart
	suite.decode(rec, &cleared)
	suite.Empty(cleared.Items)
	suite.Nil(cleared.Supplier)
}

func (suite *ServerTestSuite) TestCheckout_EmptyCart_ReturnsBadRequest() {
	rec := suite.do(http.MethodPost, "/api/v1/cart/checkout", "s-1", httpadapter.CheckoutRequest{
		CustomerName: "Maria", FulfillmentMode: "RETIRADA",
	})

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestCheckout_DeliveryWithoutAddress_KeepsCart() {
	suite.Require().Equal(http.StatusOK, suite.addItem("s-1", suite.dish(suite.ana, "Feijoada", 1250), 1).Code)

	rec := suite.do(http.MethodPost, "/api/v1/cart/checkout", "s-1", httpadapter.CheckoutRequest{
		CustomerName: "Maria", FulfillmentMode: "ENTREGA",
	})
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/cart/checkout", "s-1", httpadapter.CheckoutRequest{
		CustomerName: "Maria", FulfillmentMode: "DRONE",
	})
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodGet, "/api/v1/cart", "s-1", nil)
	var c httpadapter.Cart
	suite.decode(rec, &c)
	suite.Equal(1, c.TotalItemCount)
}

func (suite *ServerTestSuite) TestCheckout_CreatesOrderAndClearsCart() {
	o := suite.placeOrder("RETIRADA")

	suite.Equal("NOVO", o.Status)
	suite.Equal("RETIRADA", o.FulfillmentMode)
	suite.Empty(o.DeliveryAddress)
	suite.Equal(int64(2500), o.TotalCents)
	suite.Require().Len(o.Items, 1)
	suite.Equal(int64(1250), o.Items[0].UnitPriceCents)
	suite.Equal([]httpadapter.Action{
		{Target: "EM_PREPARO", Label: "Aceitar e Preparar (Retirada)"},
		{Target: "RECUSADO", Label: "Recusar Pedido"},
	}, o.Actions)

	rec := suite.do(http.MethodGet, "/api/v1/cart", "s-order", nil)
	var c httpadapter.Cart
	suite.decode(rec, &c)
	suite.Empty(c.Items)

	suite.Len(suite.boards.invalidated, 1)
}

func (suite *ServerTestSuite) TestBoard_ListsOrdersInLanesAndWatchesSupplier() {
	o := suite.placeOrder("ENTREGA")

	rec := suite.do(http.MethodGet, "/api/v1/suppliers/"+suite.ana.ID+"/board", "", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var board httpadapter.Board
	suite.decode(rec, &board)
	suite.Require().Len(board.Columns, 5)
	suite.Equal("Novos", board.Columns[0].Title)
	suite.Require().Len(board.Columns[0].Cards, 1)
	suite.Equal(o.ID, board.Columns[0].Cards[0].Order.ID)
	suite.Len(board.Columns[0].Cards[0].Overrides, 5)
	suite.Empty(board.Columns[4].Cards)
	suite.Equal("Recusados/Cancelados", board.Columns[4].Title)

	suite.Require().Len(suite.boards.watched, 1)
	suite.Equal(suite.ana.ID, suite.boards.watched[0].String())
}

func (suite *ServerTestSuite) TestBoardSnapshot() {
	supplierID, err := kernel.UUIDFromString(suite.ana.ID)
	suite.Require().NoError(err)

	rec := suite.do(http.MethodGet, "/api/v1/suppliers/"+suite.ana.ID+"/board/snapshot", "", nil)
	suite.Equal(http.StatusNotFound, rec.Code)

	refreshedAt := time.Date(2026, 3, 14, 13, 59, 55, 0, time.UTC)
	suite.boards.snapshots[supplierID] = jobs.BoardSnapshot{
		Board:       services.NewStatusBoard().Build(nil),
		RefreshedAt: refreshedAt,
	}

	rec = suite.do(http.MethodGet, "/api/v1/suppliers/"+suite.ana.ID+"/board/snapshot", "", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var board httpadapter.Board
	suite.decode(rec, &board)
	suite.Len(board.Columns, 5)
	suite.Require().NotNil(board.RefreshedAt)
	suite.True(refreshedAt.Equal(*board.RefreshedAt))
}

func (suite *ServerTestSuite) TestTransitions_GuidedFlowForPickup() {
	o := suite.placeOrder("RETIRADA")
	path := "/api/v1/orders/" + o.ID + "/transitions"

	rec := suite.do(http.MethodPost, path, "", httpadapter.TransitionRequest{Target: "FINALIZADO"})
	suite.Equal(http.StatusUnprocessableEntity, rec.Code)

	for _, target := range []string{"EM_PREPARO", "AGUARDANDO_CLIENTE", "FINALIZADO"} {
		rec = suite.do(http.MethodPost, path, "", httpadapter.TransitionRequest{Target: target})
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var updated httpadapter.Order
		suite.decode(rec, &updated)
		suite.Equal(target, updated.Status)
	}

	rec = suite.do(http.MethodPost, path, "", httpadapter.TransitionRequest{Target: "CANCELADO_FORNECEDOR"})
	suite.Equal(http.StatusUnprocessableEntity, rec.Code)

	suite.Len(suite.orders.changes, 3)
	suite.Len(suite.boards.invalidated, 4)
}

func (suite *ServerTestSuite) TestTransitions_BadInput() {
	o := suite.placeOrder("ENTREGA")

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+o.ID+"/transitions", "", httpadapter.TransitionRequest{Target: "PERDIDO"})
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/transitions", "",
		httpadapter.TransitionRequest{Target: "EM_PREPARO"})
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestOverride_AnyStatusWithReason() {
	o := suite.placeOrder("ENTREGA")
	path := "/api/v1/orders/" + o.ID + "/override"

	rec := suite.do(http.MethodPost, path, "", httpadapter.OverrideRequest{Target: "FINALIZADO", Reason: "entregue por fora"})
	suite.Require().Equal(http.StatusOK, rec.Code)
	var updated httpadapter.Order
	suite.decode(rec, &updated)
	suite.Equal("FINALIZADO", updated.Status)
	suite.Empty(updated.Actions)

	rec = suite.do(http.MethodPost, path, "", httpadapter.OverrideRequest{Target: "NOVO"})
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(rec, &updated)
	suite.Equal("NOVO", updated.Status)

	suite.Require().Len(suite.orders.changes, 2)
	suite.Equal("entregue por fora", suite.orders.changes[0].Reason())
}

func (suite *ServerTestSuite) TestSummary_LinkAndQRCode() {
	o := suite.placeOrder("ENTREGA")

	rec := suite.do(http.MethodGet, "/api/v1/orders/"+o.ID+"/summary", "", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var summary httpadapter.OrderSummary
	suite.decode(rec, &summary)
	suite.Equal(o.ID, summary.OrderID)
	suite.Contains(summary.Message, "Boa%20tarde%2C%20Maria!")
	suite.Equal(fmt.Sprintf("https://wa.me/5511988887777?text=%s", summary.Message), summary.Link)

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+o.ID+"/summary/qrcode?size=200", "", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("image/png", rec.Header().Get(echo.HeaderContentType))
	suite.NotEmpty(rec.Body.Bytes())

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+o.ID+"/summary/qrcode?size=big", "", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String()+"/summary", "", nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestSummary_ContactWithoutPhone_ReturnsMessageWithoutLink() {
	suite.Require().Equal(http.StatusOK, suite.addItem("s-mail", suite.dish(suite.ana, "Feijoada", 1250), 1).Code)
	o := suite.checkout("s-mail", httpadapter.CheckoutRequest{
		CustomerName:    "Maria",
		CustomerContact: "maria@example.com",
		FulfillmentMode: "RETIRADA",
	})

	rec := suite.do(http.MethodGet, "/api/v1/orders/"+o.ID+"/summary", "", nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var summary httpadapter.OrderSummary
	suite.decode(rec, &summary)
	suite.Contains(summary.Message, "Boa%20tarde%2C%20Maria!")
	suite.Empty(summary.Link)

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+o.ID+"/summary/qrcode", "", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestHistory_ErrorMapping() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/not-a-uuid/history", "", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String()+"/history", "", nil)
	suite.Equal(http.StatusServiceUnavailable, rec.Code, rec.Body.String())
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.NewPersistenceUnavailableError("list orders", errors.New("down")), http.StatusServiceUnavailable},
		{errs.NewPersistenceUnavailableError("load order", errs.NewObjectNotFoundError("order", "x")), http.StatusServiceUnavailable},
		{errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{errs.NewInvalidTransitionError("NOVO", "FINALIZADO", "ENTREGA"), http.StatusUnprocessableEntity},
		{commands.ErrTransitionInFlight, http.StatusConflict},
		{cart.ErrConflictChanged, http.StatusConflict},
		{errs.NewMalformedOrderError("no items"), http.StatusBadRequest},
		{errs.NewValueIsOutOfRangeError("reason length", 600, 0, 500), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, httpadapter.StatusFor(tt.err))
		})
	}
}
