package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malafaareh/storefront/internal/catalog"
	"github.com/malafaareh/storefront/internal/orders"
	"github.com/malafaareh/storefront/internal/payment"
)

const webhookSecret = "whsec_test"

func newWebhookServer(t *testing.T) (*httptest.Server, orders.Repository) {
	t.Helper()
	repo := orders.NewFileRepo(t.TempDir())
	h := &PaymentsHandler{
		Svc:           &orders.Service{Repo: repo, Currency: "XAF"},
		Repo:          repo,
		Catalog:       catalog.NewMemoryStore(),
		Client:        payment.NewClient("http://unused", ""),
		WebhookSecret: webhookSecret,
		Service:       "test",
	}
	router := NewRouter()
	h.Register(router, &Auth{Secret: "secret"})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, repo
}

func pendingOrder(t *testing.T, repo orders.Repository, userID string) *orders.Order {
	t.Helper()
	svc := &orders.Service{Repo: repo, Currency: "XAF"}
	o, err := svc.Create(context.Background(), userID, catalog.Seed(),
		[]orders.CartItem{{ProductID: 1, Quantity: 1}}, orders.StatusPending)
	require.NoError(t, err)
	return o
}

func completedEvent(orderID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","metadata":{"orderId":%q}}}}`,
		orderID))
}

func postWebhook(t *testing.T, srv *httptest.Server, body []byte, header string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/webhooks/payment", strings.NewReader(string(body)))
	require.NoError(t, err)
	if header != "" {
		req.Header.Set(payment.SignatureHeader, header)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func signEvent(body []byte) string {
	return payment.Sign(body, fmt.Sprint(time.Now().Unix()), webhookSecret)
}

func TestWebhook_MarksOrderPaid(t *testing.T) {
	srv, repo := newWebhookServer(t)
	o := pendingOrder(t, repo, "alice")

	body := completedEvent(o.ID)
	resp := postWebhook(t, srv, body, signEvent(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list, err := repo.ByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, orders.StatusPaid, list[0].Status)
}

func TestWebhook_RedeliveryIsIdempotent(t *testing.T) {
	srv, repo := newWebhookServer(t)
	o := pendingOrder(t, repo, "alice")

	body := completedEvent(o.ID)
	for i := 0; i < 2; i++ {
		resp := postWebhook(t, srv, body, signEvent(body))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1, "redelivery must not duplicate orders")
	assert.Equal(t, orders.StatusPaid, all[0].Status)
}

func TestWebhook_InvalidSignatureRejected(t *testing.T) {
	srv, repo := newWebhookServer(t)
	o := pendingOrder(t, repo, "alice")

	body := completedEvent(o.ID)
	resp := postWebhook(t, srv, body, "t=1,v1=deadbeef")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postWebhook(t, srv, body, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	list, err := repo.ByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPending, list[0].Status, "rejected deliveries must not change state")
}

func TestWebhook_EventWithoutOrderIDIsAckedNoOp(t *testing.T) {
	srv, repo := newWebhookServer(t)
	pendingOrder(t, repo, "alice")

	body := []byte(`{"id":"evt_2","type":"checkout.session.completed","data":{"object":{"id":"cs_2","metadata":{}}}}`)
	resp := postWebhook(t, srv, body, signEvent(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list, err := repo.ByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPending, list[0].Status)
}

func TestWebhook_UnknownOrderIsAcked(t *testing.T) {
	srv, _ := newWebhookServer(t)

	body := completedEvent("never-created")
	resp := postWebhook(t, srv, body, signEvent(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhook_IrrelevantEventTypeIgnored(t *testing.T) {
	srv, repo := newWebhookServer(t)
	o := pendingOrder(t, repo, "alice")

	body := []byte(fmt.Sprintf(
		`{"id":"evt_3","type":"charge.refunded","data":{"object":{"id":"ch_1","metadata":{"orderId":%q}}}}`, o.ID))
	resp := postWebhook(t, srv, body, signEvent(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list, err := repo.ByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPending, list[0].Status)
}

func TestCheckoutSession_NotConfigured(t *testing.T) {
	srv, _ := newWebhookServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/payments/checkout-session", strings.NewReader(`{"items":[]}`))
	require.NoError(t, err)
	req.AddCookie(sessionCookie(t, "alice", "user"))
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}
