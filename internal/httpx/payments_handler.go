package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/malafaareh/storefront/internal/catalog"
	kafkax "github.com/malafaareh/storefront/internal/kafka"
	"github.com/malafaareh/storefront/internal/orders"
	"github.com/malafaareh/storefront/internal/payment"
)

type PaymentsHandler struct {
	Svc           *orders.Service
	Repo          orders.Repository
	Catalog       catalog.Store
	Client        *payment.Client
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Redis         *redis.Client
	Producer      *kafkax.Producer
	Service       string
}

func (h *PaymentsHandler) Register(r *chi.Mux, a *Auth) {
	r.With(a.RequireAuth).Post("/api/payments/checkout-session", h.createCheckoutSession)
	// The processor authenticates itself through the signature header.
	r.Post("/api/webhooks/payment", h.webhook)
}

func (h *PaymentsHandler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	if !h.Client.Configured() {
		writeError(w, http.StatusNotImplemented, "payment processor not configured")
		return
	}
	user := CurrentUser(r.Context())

	var req struct {
		Items      []orders.CartItem `json:"items"`
		SuccessURL string            `json:"successUrl"`
		CancelURL  string            `json:"cancelUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := withTimeout(r, 10*time.Second)
	defer cancel()

	products, err := h.Catalog.All(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load products")
		return
	}

	// Asynchronous flow: the order waits in pending until the processor
	// confirms through the webhook.
	order, err := h.Svc.Create(ctx, user.UserID, products, req.Items, orders.StatusPending)
	if err != nil {
		respondCreateError(w, err)
		return
	}
	cacheStatus(ctx, h.Redis, order)
	publishOrderCreated(h.Producer, h.Service, order)

	lineItems := make([]payment.LineItem, 0, len(order.Items))
	for _, it := range order.Items {
		p, _ := catalog.ByID(products, it.ProductID)
		lineItems = append(lineItems, payment.LineItem{Name: p.Name, Amount: it.Price, Quantity: it.Quantity})
	}
	successURL, cancelURL := req.SuccessURL, req.CancelURL
	if successURL == "" {
		successURL = h.SuccessURL
	}
	if cancelURL == "" {
		cancelURL = h.CancelURL
	}

	session, err := h.Client.CreateCheckoutSession(ctx, payment.SessionRequest{
		Currency:   order.Currency,
		LineItems:  lineItems,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Metadata:   map[string]string{"orderId": order.ID, "userId": user.UserID},
	})
	if err != nil {
		log.Printf("checkout session for order %s: %v", order.ID, err)
		writeError(w, http.StatusBadGateway, "could not create payment session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": session.URL, "id": session.ID})
}

func (h *PaymentsHandler) webhook(w http.ResponseWriter, r *http.Request) {
	// The raw body is needed for verification; parsing first would
	// invalidate the signature.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := payment.VerifySignature(body, r.Header.Get(payment.SignatureHeader), h.WebhookSecret); err != nil {
		log.Printf("webhook rejected: %v", err)
		writeError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	var ev payment.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := withTimeout(r, 5*time.Second)
	defer cancel()

	if ev.Type == payment.EventCheckoutCompleted {
		if orderID := ev.Data.Object.Metadata["orderId"]; orderID != "" {
			order, err := h.Repo.UpdateStatus(ctx, orderID, orders.StatusPaid)
			switch {
			case errors.Is(err, orders.ErrOrderNotFound):
				// Event for an order this system never created; ack so the
				// processor stops retrying.
				log.Printf("webhook %s: unknown order %s", ev.ID, orderID)
			case err != nil:
				writeError(w, http.StatusInternalServerError, "could not update order")
				return
			default:
				cacheStatus(ctx, h.Redis, order)
				publishOrderStatus(h.Producer, h.Service, order)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
