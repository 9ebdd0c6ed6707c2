package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func checkoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Checkout(c.Request.Context(), currentUserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func orderHistoryHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.History(c.Request.Context(), currentUserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
	}
}
