package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidCoupon   = errors.New("invalid or inapplicable coupon code")
	ErrGiftLine        = errors.New("cannot modify gift items directly")
	ErrOrderNotFound   = errors.New("order not found")
)

// respondError maps the cart error taxonomy onto HTTP statuses. Anything
// unrecognized is a storage failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrVariantNotFound),
		errors.Is(err, ErrInvalidCoupon),
		errors.Is(err, ErrGiftLine):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
	}
}
