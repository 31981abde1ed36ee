package httpapi

import (
	"context"
	"net/http"

	"storefront-be/internal/checkout"
	"storefront-be/internal/middleware"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// Reconciler applies payment gateway callbacks.
type Reconciler interface {
	HandleSuccess(ctx context.Context, orderID, paymentKey string, amount int64) (*checkout.Outcome, error)
	HandleFailure(ctx context.Context, orderID, code, message string) (*checkout.Outcome, error)
}

type Deps struct {
	Reconciler    Reconciler
	Orders        order.Service
	Notifications notification.Service

	// AllowedOrigin is the SPA origin allowed to open websockets.
	AllowedOrigin string
}

// Handler serves the routes that cannot go through GraphQL: the browser
// redirects back from the hosted payment window and the notification
// websocket.
type Handler struct {
	reconciler    Reconciler
	orders        order.Service
	notifications notification.Service

	upgrader websocket.Upgrader
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		reconciler:    d.Reconciler,
		orders:        d.Orders,
		notifications: d.Notifications,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     sameOrigin(d.AllowedOrigin),
		},
	}
}

// Mount registers the routes on r. Callers are expected to have run
// middleware.AuthMiddleware before these handlers.
func (h *Handler) Mount(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/v1/payments/success", h.paymentSuccess)
		r.Get("/api/v1/payments/fail", h.paymentFail)
		r.Get("/ws/notifications", h.notificationStream)
	})
}

func currentUserID(r *http.Request) string {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}

func sameOrigin(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed == "" || origin == allowed
	}
}
