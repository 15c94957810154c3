package ecommerce_routes

import (
	"time"

	"github.com/bodthegod/jpperformancecars-backend/cart"
	"github.com/bodthegod/jpperformancecars-backend/checkout"
	"github.com/bodthegod/jpperformancecars-backend/controllers/ecommerce/cart_controller"
	"github.com/bodthegod/jpperformancecars-backend/controllers/ecommerce/checkout_controller"
	"github.com/bodthegod/jpperformancecars-backend/controllers/ecommerce/contact_controller"
	store_obd "github.com/bodthegod/jpperformancecars-backend/controllers/ecommerce/obd_controller"
	store_order "github.com/bodthegod/jpperformancecars-backend/controllers/ecommerce/order_controller"
	store_part "github.com/bodthegod/jpperformancecars-backend/controllers/ecommerce/part_controller"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
)

// Deps carries the storefront's long-lived collaborators. Forms may be nil
// when EmailJS is not configured.
type Deps struct {
	Carts        *cart.Store
	Checkout     *checkout.Flow
	FindPart     cart_controller.PartFinder
	Searches     *services.LatestOnly
	Forms        contact_controller.FormSender
	SecureCookie bool
}

func SetupStorefrontRoutes(router *gin.RouterGroup, deps Deps) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")
	{
		store.GET("/parts", store_part.GetStorefrontParts)
		store.GET("/parts/filters", store_part.GetPartFilters)
		store.GET("/parts/:slug", store_part.GetStorefrontPartBySlug)
		store.GET("/vehicles", store_part.GetVehicles)
	}

	withCart := router.Group("")
	withCart.Use(middleware.CartSession(deps.SecureCookie))

	// Diagnostics
	obd := withCart.Group("/obd-codes")
	{
		obd.GET("/search", store_obd.SearchOBDCodes(deps.Searches))
		obd.POST("/submissions", middleware.RateLimiter(5, time.Hour), store_obd.SubmitOBDCode)
		obd.GET("/:code", store_obd.GetOBDCode)
	}

	// Cart
	cartGroup := withCart.Group("/cart")
	{
		cartGroup.GET("", cart_controller.GetCart(deps.Carts))
		cartGroup.DELETE("", cart_controller.ClearCart(deps.Carts))
		cartGroup.POST("/items", cart_controller.AddCartItem(deps.Carts, deps.FindPart))
		cartGroup.PATCH("/items/:partId", cart_controller.UpdateCartItem(deps.Carts, deps.FindPart))
		cartGroup.DELETE("/items/:partId", cart_controller.RemoveCartItem(deps.Carts))
	}

	// Checkout
	checkoutGroup := withCart.Group("/checkout")
	{
		checkoutGroup.GET("", checkout_controller.GetCheckout(deps.Checkout))
		checkoutGroup.POST("/shipping", checkout_controller.SubmitShipping(deps.Checkout))
		checkoutGroup.POST("/payment", middleware.RateLimiter(20, 10*time.Minute), checkout_controller.StartPayment(deps.Checkout))
		checkoutGroup.POST("/complete", checkout_controller.CompleteCheckout(deps.Checkout))
	}

	// Contact
	forms := router.Group("")
	forms.Use(middleware.RateLimiter(5, time.Hour))
	{
		forms.POST("/contact", contact_controller.SubmitContact(deps.Forms))
		forms.POST("/service-requests", contact_controller.SubmitServiceRequest(deps.Forms))
	}

	router.GET("/orders/lookup", middleware.RateLimiter(30, 15*time.Minute), store_order.TrackOrder)
}
