package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "storefront/docs"
	"storefront/pkg/catalog"
	"storefront/pkg/checkout"
	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/order"
	"storefront/pkg/otel"
	"storefront/pkg/override"
)

type app struct {
	log        *logger.Logger
	tracer     trace.Tracer
	sessions   sessionStore
	catalog    catalog.Catalog
	checkout   *checkout.Manager
	orders     order.Repository
	overrides  *override.Store
	events     events.Publisher
	metrics    *metrics.Metrics
	gatherer   prometheus.Gatherer
	adminToken string

	// overrideMu serializes marker writes; each is a read-modify-write of
	// a shared list.
	overrideMu sync.Mutex
}

func (a *app) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(a.traceMiddleware, a.metricsMiddleware)
	r.HandleFunc("/login", a.loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/products", a.searchProductsHandler).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", a.getProductHandler).Methods(http.MethodGet)

	c := r.PathPrefix("/cart").Subrouter()
	c.Use(a.authMiddleware)
	c.HandleFunc("", a.getCartHandler).Methods(http.MethodGet)
	c.HandleFunc("/items", a.addItemHandler).Methods(http.MethodPost)
	c.HandleFunc("/items/{id}", a.setQuantityHandler).Methods(http.MethodPut)
	c.HandleFunc("/items/{id}", a.removeItemHandler).Methods(http.MethodDelete)
	c.HandleFunc("/discount", a.applyDiscountHandler).Methods(http.MethodPost)
	c.HandleFunc("/discount", a.clearDiscountHandler).Methods(http.MethodDelete)

	r.Handle("/checkout", a.authMiddleware(http.HandlerFunc(a.checkoutHandler))).Methods(http.MethodPost)

	o := r.PathPrefix("/orders").Subrouter()
	o.Use(a.authMiddleware)
	o.HandleFunc("", a.listOrdersHandler).Methods(http.MethodGet)
	o.HandleFunc("/{id}", a.getOrderHandler).Methods(http.MethodGet)
	o.HandleFunc("/{id}/{action:cancel|exchange|refund}", a.markOrderHandler).Methods(http.MethodPost)

	if a.adminToken != "" {
		adm := r.PathPrefix("/admin").Subrouter()
		adm.Use(a.adminMiddleware)
		adm.HandleFunc("/orders/{id}/status", a.updateStatusHandler).Methods(http.MethodPut)
	}

	r.Handle("/metrics", metrics.Handler(a.gatherer)).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

type ctxKey int

const userKey ctxKey = 0

func userFrom(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}

func (a *app) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), a.tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware counts requests per route template and status.
func (a *app) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unknown"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		a.metrics.Requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		a.metrics.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	})
}

// authMiddleware ensures a valid session exists.
func (a *app) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		user, ok, err := a.sessions.User(r.Context(), c.Value)
		if err != nil {
			a.log.Error(r.Context(), "session lookup", "error", err)
		}
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *app) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// publish sends e. Delivery failures are logged and do not fail the request.
func (a *app) publish(ctx context.Context, e events.OrderEvent) {
	if err := a.events.Publish(ctx, e); err != nil {
		a.log.Warn(ctx, "publish order event", "type", e.Type, "order_id", e.OrderID, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
