package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"storefront/pkg/events"
	"storefront/pkg/order"
	"storefront/pkg/otel"
)

// listOrdersHandler lists the caller's orders with display status.
// @Summary List orders with display status
// @Produce json
// @Success 200 {array} order.View
// @Security ApiKeyAuth
// @Router /orders [get]
func (a *app) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	orders, err := a.orders.List(ctx, userFrom(ctx))
	if err != nil {
		a.log.Error(ctx, "list orders", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sets := a.overrides.Load(ctx)
	views := make([]order.View, 0, len(orders))
	for _, o := range orders {
		views = append(views, order.NewView(o, sets))
	}
	writeJSON(w, http.StatusOK, views)
}

// getOrderHandler retrieves one of the caller's orders.
// @Summary Get order with display status
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.View
// @Security ApiKeyAuth
// @Router /orders/{id} [get]
func (a *app) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	o, ok := a.ownOrder(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, order.NewView(o, a.overrides.Load(ctx)))
}

// markOrderHandler records a cancellation, exchange or refund marker.
// @Summary Mark order cancelled, exchange or refund requested
// @Produce json
// @Param id path string true "Order ID"
// @Param action path string true "Marker" Enums(cancel, exchange, refund)
// @Success 200 {object} order.View
// @Security ApiKeyAuth
// @Router /orders/{id}/{action} [post]
func (a *app) markOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "markOrderHandler")
	defer span.End()

	o, ok := a.ownOrder(w, r)
	if !ok {
		return
	}
	action := mux.Vars(r)["action"]

	a.overrideMu.Lock()
	var (
		marker string
		err    error
	)
	switch action {
	case "cancel":
		marker, err = events.MarkerCancelled, a.overrides.MarkCancelled(ctx, o.ID)
	case "exchange":
		marker, err = events.MarkerExchange, a.overrides.MarkExchange(ctx, o.ID)
	case "refund":
		marker, err = events.MarkerRefund, a.overrides.MarkRefund(ctx, o.ID)
	}
	a.overrideMu.Unlock()
	if err != nil {
		a.log.Error(ctx, "mark order", "order_id", o.ID, "action", action, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.metrics.OverrideMarks.WithLabelValues(marker).Inc()
	a.publish(ctx, events.Marked(o, marker, time.Now()))
	writeJSON(w, http.StatusOK, order.NewView(o, a.overrides.Load(ctx)))
}

// updateStatusHandler sets the canonical status of any order.
// @Summary Set canonical order status
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body statusRequest true "Status"
// @Success 200 {object} order.Order
// @Router /admin/orders/{id}/status [put]
func (a *app) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateStatusHandler")
	defer span.End()

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := a.orders.UpdateStatus(ctx, mux.Vars(r)["id"], status)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		a.log.Error(ctx, "update order status", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.log.Info(ctx, "order status updated", "order_id", o.ID, "status", o.Status)
	a.publish(ctx, events.New(events.TypeStatusChanged, o, o.UpdatedAt))
	writeJSON(w, http.StatusOK, o)
}

// ownOrder loads the order in the path. Orders of other users are reported
// as not found.
func (a *app) ownOrder(w http.ResponseWriter, r *http.Request) (order.Order, bool) {
	ctx := r.Context()
	o, err := a.orders.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.NotFound(w, r)
			return order.Order{}, false
		}
		a.log.Error(ctx, "get order", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return order.Order{}, false
	}
	if o.Owner != userFrom(ctx) {
		http.NotFound(w, r)
		return order.Order{}, false
	}
	return o, true
}

type statusRequest struct {
	Status string `json:"status"`
}
