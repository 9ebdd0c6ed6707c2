package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	authsvc "storefront/internal/service/auth"
	cartsvc "storefront/internal/service/cart"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the router depends on.
type Deps struct {
	AuthSvc     authService
	CatalogSvc  catalogService
	CartSvc     cartService
	CheckoutSvc checkoutService
}

type authService interface {
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type catalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CategoryDetail(ctx context.Context, id string) (*domain.Category, []domain.Product, error)
	ListProducts(ctx context.Context, query string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, cartrepo.Outcome, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	ViewCart(ctx context.Context, userID string) (*cartsvc.View, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, userID string) (*domain.Order, error)
	History(ctx context.Context, userID string) ([]domain.Order, error)
}

const userIDKey = "userID"

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.AuthSvc == nil || deps.CatalogSvc == nil || deps.CartSvc == nil || deps.CheckoutSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/categories", listCategoriesHandler(deps.CatalogSvc))
	router.GET("/categories/:id", categoryDetailHandler(deps.CatalogSvc))
	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", productDetailHandler(deps.CatalogSvc))

	router.POST("/signup", signupHandler(deps.AuthSvc))
	router.POST("/login", loginHandler(deps.AuthSvc))

	authed := router.Group("/", authMiddleware(deps.AuthSvc))
	authed.GET("/me", meHandler)
	authed.GET("/cart", viewCartHandler(deps.CartSvc))
	authed.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	authed.PATCH("/cart/items/:id", updateCartItemHandler(deps.CartSvc))
	authed.DELETE("/cart/items/:id", removeCartItemHandler(deps.CartSvc))
	authed.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
	authed.GET("/orders", orderHistoryHandler(deps.CheckoutSvc))

	return router, nil
}

// authMiddleware resolves the bearer token and stashes the user for
// handlers further down the chain.
func authMiddleware(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}
		user, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		c.Set(userIDKey, user.ID)
		c.Set("user", user)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// writeError maps domain errors onto HTTP responses. Insufficient-stock
// batches become one message per violating product.
func writeError(c *gin.Context, err error) {
	if batch, ok := domain.AsStockErrors(err); ok {
		msgs := make([]string, 0, len(batch))
		for _, item := range batch {
			msgs = append(msgs, item.Error())
		}
		c.JSON(http.StatusConflict, gin.H{"errors": msgs})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, authsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
	case errors.Is(err, domain.ErrCartEmpty):
		c.JSON(http.StatusConflict, gin.H{"message": "cart is empty"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
