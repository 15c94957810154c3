package cart_controller

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/bodthegod/jpperformancecars-backend/cart"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errPartNotFound = errors.New("part not found")

// PartFinder loads the live part a cart line refers to.
type PartFinder func(ctx context.Context, id uuid.UUID) (*models.Part, error)

// FindPartInDB looks parts up through gorm.
func FindPartInDB(db *gorm.DB) PartFinder {
	return func(ctx context.Context, id uuid.UUID) (*models.Part, error) {
		var part models.Part
		if err := db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errPartNotFound
			}
			return nil, err
		}
		return &part, nil
	}
}

type addItemRequest struct {
	PartID uuid.UUID `json:"part_id" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0,max=99"`
}

func respondCart(c *gin.Context, status int, message string, state *cart.State) {
	c.JSON(status, models.SuccessResponse(c, message, cart.NewView(middleware.CartID(c), state)))
}

// lookupPart writes the error response itself and returns nil when the part
// cannot be used.
func lookupPart(c *gin.Context, find PartFinder, id uuid.UUID) *models.Part {
	part, err := find(c.Request.Context(), id)
	if errors.Is(err, errPartNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Part not found"))
		return nil
	}
	if err != nil {
		log.Printf("[cart] ❌ load part %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load part"))
		return nil
	}
	return part
}

// GetCart godoc
// @Summary Get cart
// @Description Returns the visitor's cart with line totals and the running total.
// @Tags Storefront - Cart
// @Produce json
// @Success 200 {object} models.ApiResponse{data=cart.View}
// @Failure 500 {object} models.ApiResponse
// @Router /cart [get]
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := store.Get(c.Request.Context(), middleware.CartID(c))
		if err != nil {
			log.Printf("[cart] ❌ load %s: %v", middleware.CartID(c), err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load cart"))
			return
		}
		respondCart(c, http.StatusOK, "Cart retrieved", state)
	}
}

// AddCartItem godoc
// @Summary Add a part to the cart
// @Description Adds one unit. A part already in the cart keeps the price it was first added at.
// @Tags Storefront - Cart
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Part to add"
// @Success 200 {object} models.ApiResponse{data=cart.View}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /cart/items [post]
func AddCartItem(store *cart.Store, find PartFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}

		part := lookupPart(c, find, req.PartID)
		if part == nil {
			return
		}
		if !part.Purchasable() {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, part.Name+" is out of stock"))
			return
		}

		ctx := c.Request.Context()
		cartID := middleware.CartID(c)
		current, err := store.Get(ctx, cartID)
		if err != nil {
			log.Printf("[cart] ❌ load %s: %v", cartID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load cart"))
			return
		}
		if line, ok := current.Get(part.ID); ok && line.Quantity+1 > part.StockQuantity {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Not enough stock for "+part.Name))
			return
		}

		state, err := store.Dispatch(ctx, cartID, cart.AddItem{Item: cart.Item{
			PartID:    part.ID,
			Name:      part.Name,
			Slug:      part.Slug,
			Image:     part.PrimaryImage(),
			UnitPrice: part.Price,
		}})
		if err != nil {
			log.Printf("[cart] ❌ add %s to %s: %v", part.ID, cartID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
			return
		}
		respondCart(c, http.StatusOK, "Added to cart", state)
	}
}

// UpdateCartItem godoc
// @Summary Set a line quantity
// @Description Sets the quantity of a cart line. Zero removes the line.
// @Tags Storefront - Cart
// @Accept json
// @Produce json
// @Param partId path string true "Part ID"
// @Param quantity body updateQuantityRequest true "New quantity"
// @Success 200 {object} models.ApiResponse{data=cart.View}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /cart/items/{partId} [patch]
func UpdateCartItem(store *cart.Store, find PartFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		partID, err := uuid.Parse(c.Param("partId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid part ID"))
			return
		}
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}

		ctx := c.Request.Context()
		cartID := middleware.CartID(c)
		current, err := store.Get(ctx, cartID)
		if err != nil {
			log.Printf("[cart] ❌ load %s: %v", cartID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load cart"))
			return
		}
		line, ok := current.Get(partID)
		if !ok {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Part is not in the cart"))
			return
		}

		if *req.Quantity > line.Quantity {
			part := lookupPart(c, find, partID)
			if part == nil {
				return
			}
			if *req.Quantity > part.StockQuantity {
				c.JSON(http.StatusConflict, models.ErrorResponse(c, "Not enough stock for "+part.Name))
				return
			}
		}

		state, err := store.Dispatch(ctx, cartID, cart.UpdateQuantity{PartID: partID, Quantity: *req.Quantity})
		if err != nil {
			log.Printf("[cart] ❌ update %s in %s: %v", partID, cartID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
			return
		}
		respondCart(c, http.StatusOK, "Cart updated", state)
	}
}

// RemoveCartItem godoc
// @Summary Remove a line
// @Tags Storefront - Cart
// @Produce json
// @Param partId path string true "Part ID"
// @Success 200 {object} models.ApiResponse{data=cart.View}
// @Failure 400 {object} models.ApiResponse
// @Router /cart/items/{partId} [delete]
func RemoveCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		partID, err := uuid.Parse(c.Param("partId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid part ID"))
			return
		}
		state, err := store.Dispatch(c.Request.Context(), middleware.CartID(c), cart.RemoveItem{PartID: partID})
		if err != nil {
			log.Printf("[cart] ❌ remove %s: %v", partID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
			return
		}
		respondCart(c, http.StatusOK, "Removed from cart", state)
	}
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags Storefront - Cart
// @Produce json
// @Success 200 {object} models.ApiResponse{data=cart.View}
// @Router /cart [delete]
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := store.Dispatch(c.Request.Context(), middleware.CartID(c), cart.ClearCart{})
		if err != nil {
			log.Printf("[cart] ❌ clear %s: %v", middleware.CartID(c), err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to clear cart"))
			return
		}
		respondCart(c, http.StatusOK, "Cart cleared", state)
	}
}
