package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
)

// PlaceOrder places a COD order and clears the buyer's cart.
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, _, err := h.orders.PlaceOrder(c.Request.Context(), userID, req.DomainItems(), req.Address, domain.MethodCOD, "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Placed", "order": NewOrderResponse(order)})
}

// PlaceOrderStripe creates the order unpaid and returns the hosted checkout URL.
func (h *Handler) PlaceOrderStripe(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	origin := c.GetHeader("Origin")
	_, sess, err := h.orders.PlaceOrder(c.Request.Context(), userID, req.DomainItems(), req.Address, domain.MethodStripe, origin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session_url": sess.URL})
}

// PlaceOrderRazorpay creates the order unpaid and returns the gateway order
// the client-side checkout opens with.
func (h *Handler) PlaceOrderRazorpay(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, sess, err := h.orders.PlaceOrder(c.Request.Context(), userID, req.DomainItems(), req.Address, domain.MethodRazorpay, "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": gin.H{
		"id":      sess.GatewayRef,
		"amount":  order.Amount * 100,
		"receipt": order.ID.Hex(),
	}})
}

// VerifyStripe finalizes an order from the checkout redirect flag. A failed
// payment deletes the unconfirmed order.
func (h *Handler) VerifyStripe(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	orderID, ok := objectID(c, req.OrderID)
	if !ok {
		return
	}

	if _, err := h.orders.ResolvePayment(c.Request.Context(), orderID, req.Success); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": req.Success})
}

// VerifyRazorpay asks the gateway whether the charge settled.
func (h *Handler) VerifyRazorpay(c *gin.Context) {
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	orderID, ok := objectID(c, req.OrderID)
	if !ok {
		return
	}

	order, err := h.orders.VerifyGatewayPayment(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment Failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment Successful"})
}

// AllOrders lists every order for the admin panel.
func (h *Handler) AllOrders(c *gin.Context) {
	orders, err := h.orders.AllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": NewOrderResponses(orders)})
}

// UserOrders lists the authenticated buyer's orders.
func (h *Handler) UserOrders(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	orders, err := h.orders.UserOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": NewOrderResponses(orders)})
}

// UpdateStatus applies an admin status transition.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	orderID, ok := objectID(c, req.OrderID)
	if !ok {
		return
	}

	order, err := h.orders.SetStatus(c.Request.Context(), orderID, req.Status, req.CancelledBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated successfully", "order": NewOrderResponse(order)})
}

// UpdatePaymentStatus applies a markAsPaid/markAsUnpaid/refund action.
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	orderID, ok := objectID(c, req.OrderID)
	if !ok {
		return
	}

	order, err := h.orders.UpdatePayment(c.Request.Context(), orderID, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": paymentActionMessage(req.Action), "order": NewOrderResponse(order)})
}

func paymentActionMessage(action domain.PaymentAction) string {
	switch action {
	case domain.ActionMarkAsPaid:
		return "Payment marked as Paid"
	case domain.ActionMarkAsUnpaid:
		return "Payment marked as Unpaid"
	case domain.ActionRefund:
		return "Payment Refunded"
	}
	return "Payment status updated"
}

// CancelOrder is the buyer-initiated cancellation.
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	orderID, ok := objectID(c, req.OrderID)
	if !ok {
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), orderID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Cancelled Successfully", "order": NewOrderResponse(order)})
}
