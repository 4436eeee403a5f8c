package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscanteen/canteen-api/internal/archive"
	"github.com/campuscanteen/canteen-api/internal/auth"
	"github.com/campuscanteen/canteen-api/internal/cart"
	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/notification"
	"github.com/campuscanteen/canteen-api/internal/order"
	"github.com/campuscanteen/canteen-api/internal/user"
)

// OK writes the success envelope. Extra fields ride alongside
// success/message at the top level, matching the API contract.
func OK(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail writes the failure envelope with an explicit status.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// Error maps domain errors onto HTTP statuses. Unknown errors become a
// generic 500 with the detail kept out of the response.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, menu.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, notification.ErrNotFound),
		errors.Is(err, archive.ErrNotFound),
		errors.Is(err, cart.ErrItemNotInCart):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrMissingStudent),
		errors.Is(err, order.ErrInvalidPayment),
		errors.Is(err, order.ErrItemUnavailable),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, cart.ErrItemUnavailable),
		errors.Is(err, cart.ErrBadQuantity),
		errors.Is(err, menu.ErrInvalidCategory),
		errors.Is(err, menu.ErrInvalidRating):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrAlreadyExist),
		errors.Is(err, order.ErrSequenceExhausted),
		errors.Is(err, archive.ErrDuplicate):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrForbidden):
		Fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, order.ErrDuplicateNumber):
		// the one internal retry already happened
		Fail(c, http.StatusInternalServerError, "Order creation failed. Please try again.")
	default:
		Fail(c, http.StatusInternalServerError, "Something went wrong")
	}
}
