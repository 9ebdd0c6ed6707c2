package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

func TestCheckoutHandler_Created(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	checkout := &stubCheckoutService{order: &domain.Order{
		ID:          "o1",
		UserID:      "u1",
		IsCompleted: true,
		Items: []domain.OrderItem{
			{ID: "oi1", OrderID: "o1", ProductID: "p1", ProductName: "Mug", PriceCents: 1299, Quantity: 2},
		},
	}}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, nil, checkout))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", ""))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var order domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if order.ID != "o1" || !order.IsCompleted || len(order.Items) != 1 {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestCheckoutHandler_StockErrorsOnePerProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	checkout := &stubCheckoutService{checkoutErr: domain.StockErrors{
		{ProductID: "p1", ProductName: "Mug", Requested: 5, Available: 3},
		{ProductID: "p3", ProductName: "Apron", Requested: 4, Available: 2},
	}}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, nil, checkout))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", ""))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("expected 2 messages, got %v", body.Errors)
	}
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	checkout := &stubCheckoutService{checkoutErr: domain.ErrCartEmpty}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, nil, checkout))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", ""))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestOrderHistoryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	checkout := &stubCheckoutService{orders: []domain.Order{{ID: "o1"}, {ID: "o2"}}}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, nil, checkout))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/orders", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Total != 2 {
		t.Fatalf("expected 2 orders, got %d", body.Total)
	}
}
