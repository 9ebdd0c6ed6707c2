package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	cartsvc "storefront/internal/service/cart"
	"github.com/gin-gonic/gin"
)

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestViewCartHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	cart := &stubCartService{view: &cartsvc.View{
		Cart:       &domain.Cart{ID: "c1", UserID: "u1"},
		TotalCents: 3650,
	}}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, cart, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/cart", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"totalCents":3650`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddCartItemHandler_Created(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	cart := &stubCartService{
		item:    &domain.CartItem{ID: "i1", CartID: "c1", ProductID: "p1", Quantity: 2},
		outcome: cartrepo.Created,
	}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, cart, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", `{"productId":"p1","quantity":2}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddCartItemHandler_BadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, nil, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", `{"quantity":2}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddCartItemHandler_InsufficientStock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	cart := &stubCartService{addErr: domain.InsufficientStockError{
		ProductID:   "p1",
		ProductName: "Mug",
		Requested:   5,
		Available:   3,
	}}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, cart, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", `{"productId":"p1","quantity":5}`))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "only 3 left in stock") {
		t.Fatalf("expected available count in body: %s", rec.Body.String())
	}
}

func TestUpdateCartItemHandler_Forbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	cart := &stubCartService{updateErr: domain.ErrForbidden}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, cart, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/cart/items/i1", `{"quantity":2}`))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRemoveCartItemHandler_NoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{user: &domain.User{ID: "u1"}}
	router, err := buildRouter(logDiscard(), nil, testDeps(auth, &stubCartService{}, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/cart/items/i1", ""))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}
}
