package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartCookie    = "jp_cart_id"
	cartIDKey     = "cartID"
	cartCookieAge = 30 * 24 * 60 * 60
)

// CartSession makes sure every storefront request carries a cart id. A
// missing or malformed jp_cart_id cookie is replaced with a fresh uuid v7.
func CartSession(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := c.Cookie(CartCookie)
		if err != nil || !validCartID(cartID) {
			cartID = uuid.Must(uuid.NewV7()).String()
		}
		// Refresh on every request so the cookie outlives the Redis TTL.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CartCookie, cartID, cartCookieAge, "/", "", secure, true)
		c.Set(cartIDKey, cartID)
		c.Next()
	}
}

// CartID returns the id set by CartSession.
func CartID(c *gin.Context) string {
	return c.GetString(cartIDKey)
}

func validCartID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
