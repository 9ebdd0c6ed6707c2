package httpserver

import (
	"net/http"

	cartrepo "storefront/internal/repository/cart"
	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func viewCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.ViewCart(c.Request.Context(), currentUserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func addCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		item, outcome, err := svc.AddItem(c.Request.Context(), currentUserID(c), req.ProductID, req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		status := http.StatusOK
		if outcome == cartrepo.Created {
			status = http.StatusCreated
		}
		c.JSON(status, item)
	}
}

func updateCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		item, err := svc.UpdateItemQuantity(c.Request.Context(), currentUserID(c), c.Param("id"), req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func removeCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveItem(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
