package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HasnaHasan194/readhaven-checkout/checkout"
	"github.com/HasnaHasan194/readhaven-checkout/gateway"
	"github.com/HasnaHasan194/readhaven-checkout/middlewares"
	"github.com/HasnaHasan194/readhaven-checkout/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct{}

func (stubBackend) ProceedToCheckout(context.Context) (*models.CheckoutCart, error) {
	return &models.CheckoutCart{}, nil
}

func (stubBackend) GetAddresses(context.Context) ([]models.Address, error) {
	return nil, nil
}

func (stubBackend) GetProfile(context.Context) (*models.UserProfile, error) {
	return &models.UserProfile{}, nil
}

func (stubBackend) GetCoupons(context.Context) ([]models.Coupon, error) {
	return nil, nil
}

func (stubBackend) DeductWallet(context.Context, float64, string) error {
	return nil
}

func (stubBackend) PlaceOrder(_ context.Context, draft models.OrderDraft) (*models.Order, error) {
	return &models.Order{
		ID:              "order-1",
		PaymentMethod:   draft.PaymentMethod,
		DeliveryAddress: draft.DeliveryAddress,
		TotalAmount:     draft.TotalAmount,
		Status:          "Pending",
	}, nil
}

type stubGateway struct{}

func (stubGateway) CreatePayment(context.Context, string, float64, string) (*gateway.PaymentIntent, error) {
	return &gateway.PaymentIntent{OrderID: "rzp-order-1", Currency: "INR"}, nil
}

func authedContext(t *testing.T, userID, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	req := httptest.NewRequest(method, target, nil)
	identity := middlewares.Identity{UserID: userID, Email: "reader@readhaven.test"}
	ctx.Request = req.WithContext(middlewares.ContextWithIdentity(req.Context(), identity))
	return ctx, recorder
}

// A terminal result is served once; fetching it evicts the session, so the
// next checkout starts fresh instead of replaying a finished order.
func TestGetCheckoutResult_EvictsSessionAfterServing(t *testing.T) {
	Setup(stubBackend{}, stubGateway{})

	session := checkout.NewSession("user-9")
	session.Items = []models.CartLineItem{
		{ProductId: "p1", Product: models.ProductSnapshot{Name: "Book", Price: 400}, Quantity: 1},
	}
	session.Addresses = []models.Address{{ID: "addr-1", FullName: "Hasna", IsDefault: true}}
	session.SelectedAddressID = "addr-1"
	session.SelectedMethod = models.PaymentMethodCOD
	session.Recompute()
	sessions.Put(session)

	_, err := orchestrator.PlaceOrder(context.Background(), session)
	require.NoError(t, err)

	ctx, recorder := authedContext(t, "user-9", http.MethodGet, "/checkout/result")
	GetCheckoutResult(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		State string        `json:"state"`
		Order *models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "succeeded", body.State)
	require.NotNil(t, body.Order)
	assert.Equal(t, "order-1", body.Order.ID)

	_, live := sessions.Get("user-9")
	assert.False(t, live)

	ctx, recorder = authedContext(t, "user-9", http.MethodGet, "/checkout/result")
	GetCheckoutResult(ctx)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// Before the terminal state there is nothing to serve, and the session is
// not evicted by asking early.
func TestGetCheckoutResult_PendingSessionNotEvicted(t *testing.T) {
	Setup(stubBackend{}, stubGateway{})

	session := checkout.NewSession("user-9")
	session.Items = []models.CartLineItem{
		{ProductId: "p1", Product: models.ProductSnapshot{Name: "Book", Price: 400}, Quantity: 1},
	}
	session.Recompute()
	sessions.Put(session)

	ctx, recorder := authedContext(t, "user-9", http.MethodGet, "/checkout/result")
	GetCheckoutResult(ctx)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	_, live := sessions.Get("user-9")
	assert.True(t, live)
}
