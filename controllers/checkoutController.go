package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/HasnaHasan194/readhaven-checkout/checkout"
	"github.com/HasnaHasan194/readhaven-checkout/gateway"
	"github.com/HasnaHasan194/readhaven-checkout/middlewares"
	"github.com/gin-gonic/gin"
)

const (
	// Standard response messages
	msgInvalidInput       = "Invalid input"
	msgNotAuthenticated   = "User not found in context"
	msgCheckoutNotLoaded  = "No active checkout session. Load the checkout first."
	msgCouponNotFound     = "Coupon not found"
	msgCouponsUnavailable = "Unable to load coupons right now."
	msgCouponRemoved      = "Coupon removed."
	msgAddressSelected    = "Delivery address selected."
	msgMethodSelected     = "Payment method selected."
)

var (
	sessions     *checkout.Store
	loader       *checkout.Loader
	orchestrator *checkout.Orchestrator
	backend      checkout.BackendAPI
)

// Setup wires the checkout controllers with their collaborators. Called once
// from main before the routes are registered.
func Setup(api checkout.BackendAPI, paymentGateway checkout.PaymentGateway) {
	backend = api
	sessions = checkout.NewStore()
	loader = &checkout.Loader{Backend: api}
	orchestrator = &checkout.Orchestrator{Backend: api, Gateway: paymentGateway}
}

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func currentSession(ctx *gin.Context) (*checkout.Session, bool) {
	identity, ok := middlewares.IdentityFromContext(ctx.Request.Context())
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return nil, false
	}
	session, ok := sessions.Get(identity.UserID)
	if !ok {
		sendErrorResponse(ctx, http.StatusNotFound, msgCheckoutNotLoaded)
		return nil, false
	}
	return session, true
}

// checkoutView assembles the full page payload: everything the frontend
// needs to render the checkout in one response. Session state is read
// through the locked snapshot, never the raw fields.
func checkoutView(session *checkout.Session, notices []string) gin.H {
	snapshot := session.View()
	view := gin.H{
		"checkoutId":        snapshot.CheckoutID,
		"items":             snapshot.Items,
		"addresses":         snapshot.Addresses,
		"selectedAddressId": snapshot.SelectedAddressID,
		"selectedMethod":    snapshot.SelectedMethod,
		"walletBalance":     snapshot.WalletBalance,
		"pricing":           snapshot.Pricing,
		"paymentOptions":    snapshot.PaymentOptions,
		"state":             snapshot.State,
	}
	if snapshot.AppliedCoupon != nil {
		view["appliedCoupon"] = snapshot.AppliedCoupon
	}
	if len(notices) > 0 {
		view["notifications"] = notices
	}
	return view
}

// GetCheckout starts a fresh checkout session for the caller. Reloading the
// page replaces any previous session; in-progress state is intentionally not
// preserved across reloads.
func GetCheckout(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx.Request.Context())
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	session, notices := loader.Load(ctx.Request.Context(), identity.UserID)
	sessions.Put(session)

	sendJSONResponse(ctx, http.StatusOK, checkoutView(session, notices))
}

// ApplyCoupon validates and applies a coupon code to the session.
func ApplyCoupon(ctx *gin.Context) {
	var body struct {
		Code string `json:"code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	coupons, err := backend.GetCoupons(ctx.Request.Context())
	if err != nil {
		log.Println("Coupon fetch failed:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, msgCouponsUnavailable)
		return
	}

	for _, coupon := range coupons {
		if strings.EqualFold(coupon.Code, body.Code) {
			if err := session.ApplyCoupon(coupon); err != nil {
				sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
				return
			}
			sendJSONResponse(ctx, http.StatusOK, gin.H{
				"message":        coupon.Code + " applied",
				"appliedCoupon":  coupon,
				"pricing":        session.Totals(),
				"paymentOptions": session.Options(),
			})
			return
		}
	}

	sendErrorResponse(ctx, http.StatusNotFound, msgCouponNotFound)
}

// RemoveCoupon clears the applied coupon.
func RemoveCoupon(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	if err := session.ClearCoupon(); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":        msgCouponRemoved,
		"pricing":        session.Totals(),
		"paymentOptions": session.Options(),
	})
}

// SelectAddress picks the delivery address for the order.
func SelectAddress(ctx *gin.Context) {
	var body struct {
		AddressId string `json:"addressId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	if err := session.SelectAddress(body.AddressId); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgAddressSelected})
}

// SelectPaymentMethod switches the active payment method, radio style.
func SelectPaymentMethod(ctx *gin.Context) {
	var body struct {
		Method string `json:"method" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	if err := session.SelectMethod(body.Method); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":        msgMethodSelected,
		"selectedMethod": body.Method,
	})
}

// PlaceOrder runs the submission path for the selected method. COD and
// wallet respond with the terminal outcome; online responds with the payment
// intent and the session stays submitting until the gateway callback.
func PlaceOrder(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	outcome, err := orchestrator.PlaceOrder(ctx.Request.Context(), session)
	if err != nil {
		log.Println("Order submission error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"state":   outcome.State,
		"order":   outcome.Order,
		"payment": outcome.Payment,
		"message": outcome.Message,
	})
}

// PaymentCallback resolves a pending online payment. The gateway popup's
// success handler posts success=true with the payment id; a dismissal posts
// success=false. A declined or dismissed payment is still recorded as a
// failed order before routing to the failure view.
func PaymentCallback(ctx *gin.Context) {
	var body struct {
		OrderId           string `json:"orderId" binding:"required"`
		Success           bool   `json:"success"`
		RazorpayPaymentId string `json:"razorpay_payment_id"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	result := gateway.Result{
		Authorized:    body.Success,
		TransactionID: body.RazorpayPaymentId,
	}

	outcome, err := orchestrator.CompleteOnlinePayment(ctx.Request.Context(), session, body.OrderId, result)
	if err != nil {
		if errors.Is(err, checkout.ErrNoPendingPayment) {
			sendErrorResponse(ctx, http.StatusConflict, err.Error())
			return
		}
		log.Println("Payment completion error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"state":   outcome.State,
		"order":   outcome.Order,
		"message": outcome.Message,
	})
}

// GetCheckoutResult serves the terminal result views. From here the only
// actions are navigation: back to home or view orders. Serving a terminal
// result evicts the session from the store; the next checkout starts fresh
// from the backend.
func GetCheckoutResult(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	order, state, err := session.Result()
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
		return
	}
	sessions.Delete(session.UserID)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"state":          state,
		"order":          order,
		"discountAmount": order.DiscountAmount,
	})
}
