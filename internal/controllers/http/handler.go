package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/middlewares"
	"shopfront/internal/services"
)

type Handler struct {
	orders    *services.OrderService
	products  *services.ProductService
	users     *services.UserService
	business  *services.BusinessService
	jwtSecret string
}

func NewHandler(
	orders *services.OrderService,
	products *services.ProductService,
	users *services.UserService,
	business *services.BusinessService,
	jwtSecret string,
) *Handler {
	return &Handler{
		orders:    orders,
		products:  products,
		users:     users,
		business:  business,
		jwtSecret: jwtSecret,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	authUser := middlewares.AuthUser(h.jwtSecret)
	authAdmin := middlewares.AuthAdmin(h.jwtSecret)

	api := r.Group("/api")

	order := api.Group("/order")
	{
		order.POST("/place", authUser, h.PlaceOrder)
		order.POST("/stripe", authUser, h.PlaceOrderStripe)
		order.POST("/razorpay", authUser, h.PlaceOrderRazorpay)
		order.POST("/verifyStripe", authUser, h.VerifyStripe)
		order.POST("/verifyRazorpay", authUser, h.VerifyRazorpay)
		order.POST("/userorders", authUser, h.UserOrders)
		order.POST("/cancel", authUser, h.CancelOrder)
		order.POST("/list", authAdmin, h.AllOrders)
		order.POST("/status", authAdmin, h.UpdateStatus)
		order.POST("/updatePaymentStatus", authAdmin, h.UpdatePaymentStatus)
	}

	product := api.Group("/product")
	{
		product.GET("/list", h.ListProducts)
		product.POST("/single", h.SingleProduct)
		product.POST("/add", authAdmin, h.SaveProduct)
		product.POST("/remove", authAdmin, h.RemoveProduct)
		product.POST("/toggle-bestseller", authAdmin, h.ToggleBestseller)
		product.POST("/toggle-OutofStock", authAdmin, h.ToggleOutOfStock)
	}

	user := api.Group("/user")
	{
		user.POST("/register", h.Register)
		user.POST("/login", h.Login)
		user.POST("/admin", h.AdminLogin)
		user.GET("/profile", authUser, h.Profile)
		user.POST("/update", authUser, h.UpdateProfile)
	}

	cart := api.Group("/cart")
	{
		cart.POST("/get", authUser, h.GetCart)
		cart.POST("/update", authUser, h.UpdateCart)
	}

	business := api.Group("/business")
	{
		business.GET("/latest-data", authAdmin, h.LatestBusinessData)
		business.GET("/total-orders-count", authAdmin, h.TotalOrdersCount)
		business.POST("/update-data", authAdmin, h.UpdateBusinessData)
	}
}

// respondError maps service errors onto the {success:false, message} shape.
func respondError(c *gin.Context, err error) {
	var terminal *services.TerminalStateError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.As(err, &terminal),
		errors.Is(err, services.ErrCancelWindowClosed),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidPaymentAction),
		errors.Is(err, services.ErrEmptyItems),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrUserExists):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
}

// objectID parses a hex document id, responding with 400 on failure.
func objectID(c *gin.Context, hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// authedUserID returns the ObjectID of the authenticated user.
func authedUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(middlewares.UserID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user id not found in token"})
		return primitive.NilObjectID, false
	}
	return id, true
}
