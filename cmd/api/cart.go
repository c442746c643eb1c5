package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"

	"storefront/pkg/cart"
	"storefront/pkg/checkout"
	"storefront/pkg/events"
	"storefront/pkg/order"
	"storefront/pkg/otel"
)

// loginHandler handles user login and session creation.
// @Summary Login
// @Description Authenticates user and sets session cookie
// @Accept json
// @Produce json
// @Param creds body loginRequest true "Credentials"
// @Success 200
// @Router /login [post]
func (a *app) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid credentials", http.StatusBadRequest)
		return
	}
	sid, err := a.sessions.Create(ctx, req.Username)
	if err != nil {
		a.log.Error(ctx, "create session", "error", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sid, Path: "/", Expires: time.Now().Add(time.Hour), HttpOnly: true, Secure: true})
	w.WriteHeader(http.StatusOK)
}

// getProductHandler returns one product.
// @Summary Get product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} catalog.Product
// @Router /products/{id} [get]
func (a *app) getProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getProductHandler")
	defer span.End()

	p, ok := a.catalog.FindByID(ctx, mux.Vars(r)["id"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// searchProductsHandler finds products whose name contains the query.
// @Summary Search products by name
// @Produce json
// @Param name query string true "Name fragment"
// @Success 200 {array} catalog.Product
// @Router /products [get]
func (a *app) searchProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "searchProductsHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, a.catalog.FindByName(ctx, r.URL.Query().Get("name")))
}

// getCartHandler returns the caller's cart, discount and totals.
// @Summary Get cart
// @Produce json
// @Success 200 {object} checkout.State
// @Security ApiKeyAuth
// @Router /cart [get]
func (a *app) getCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCartHandler")
	defer span.End()
	r = r.WithContext(ctx)

	s, ok := a.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// addItemHandler adds a product to the cart at its catalog price.
// @Summary Add cart item
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Item"
// @Success 200 {object} checkout.State
// @Security ApiKeyAuth
// @Router /cart/items [post]
func (a *app) addItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addItemHandler")
	defer span.End()
	r = r.WithContext(ctx)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, ok := a.catalog.FindByID(ctx, req.ProductID)
	if !ok {
		http.Error(w, "unknown product", http.StatusNotFound)
		return
	}
	if len(p.Sizes) > 0 && !slices.Contains(p.Sizes, req.Size) {
		http.Error(w, "unknown size", http.StatusBadRequest)
		return
	}
	if len(p.Colors) > 0 && req.Color != "" && !slices.Contains(p.Colors, req.Color) {
		http.Error(w, "unknown color", http.StatusBadRequest)
		return
	}
	a.dispatch(w, r, checkout.AddItem{Item: cart.Item{
		ID:        cart.ItemID(p.ID, req.Size),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Size:      req.Size,
		Color:     req.Color,
		Image:     p.Image,
		Quantity:  req.Quantity,
	}})
}

// setQuantityHandler replaces a line's quantity. Zero removes the line.
// @Summary Set cart item quantity
// @Accept json
// @Produce json
// @Param id path string true "Line ID"
// @Param quantity body quantityRequest true "Quantity"
// @Success 200 {object} checkout.State
// @Security ApiKeyAuth
// @Router /cart/items/{id} [put]
func (a *app) setQuantityHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "setQuantityHandler")
	defer span.End()
	r = r.WithContext(ctx)

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.dispatch(w, r, checkout.SetQuantity{ID: mux.Vars(r)["id"], Quantity: req.Quantity})
}

// removeItemHandler drops a line from the cart.
// @Summary Remove cart item
// @Produce json
// @Param id path string true "Line ID"
// @Success 200 {object} checkout.State
// @Security ApiKeyAuth
// @Router /cart/items/{id} [delete]
func (a *app) removeItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeItemHandler")
	defer span.End()
	r = r.WithContext(ctx)

	a.dispatch(w, r, checkout.RemoveItem{ID: mux.Vars(r)["id"]})
}

// applyDiscountHandler validates a code against the cart. A rejected code is
// reported in the discount error field with status 200.
// @Summary Apply discount code
// @Accept json
// @Produce json
// @Param code body discountRequest true "Code"
// @Success 200 {object} checkout.State
// @Security ApiKeyAuth
// @Router /cart/discount [post]
func (a *app) applyDiscountHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "applyDiscountHandler")
	defer span.End()
	r = r.WithContext(ctx)

	var req discountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	st, err := s.ApplyDiscountCode(ctx, req.Code)
	if err != nil {
		a.sessionError(w, r, err)
		return
	}
	outcome := "applied"
	if !st.Discount.Success {
		outcome = "rejected"
	}
	a.metrics.DiscountOutcomes.WithLabelValues(outcome).Inc()
	writeJSON(w, http.StatusOK, st)
}

// clearDiscountHandler removes the applied code.
// @Summary Clear discount code
// @Produce json
// @Success 200 {object} checkout.State
// @Security ApiKeyAuth
// @Router /cart/discount [delete]
func (a *app) clearDiscountHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "clearDiscountHandler")
	defer span.End()
	r = r.WithContext(ctx)

	a.dispatch(w, r, checkout.DiscountCleared{})
}

// checkoutHandler places the cart as a pending order.
// @Summary Place order
// @Accept json
// @Produce json
// @Param payment body checkoutRequest true "Payment"
// @Success 201 {object} order.Order
// @Security ApiKeyAuth
// @Router /checkout [post]
func (a *app) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "checkoutHandler")
	defer span.End()
	r = r.WithContext(ctx)

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	method := order.PaymentMethod(req.PaymentMethod)
	if method != order.PaymentCard && method != order.PaymentBankTransfer {
		http.Error(w, "unsupported payment method", http.StatusBadRequest)
		return
	}
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	o, err := s.PlaceOrder(ctx, a.orders, method)
	if err != nil {
		a.sessionError(w, r, err)
		return
	}
	a.metrics.OrdersPlaced.WithLabelValues(string(method)).Inc()
	a.publish(ctx, events.New(events.TypeOrderPlaced, o, o.CreatedAt))
	writeJSON(w, http.StatusCreated, o)
}

func (a *app) session(w http.ResponseWriter, r *http.Request) (*checkout.Session, bool) {
	s, err := a.checkout.Session(r.Context(), userFrom(r.Context()))
	if err != nil {
		a.log.Error(r.Context(), "open cart", "error", err)
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

func (a *app) dispatch(w http.ResponseWriter, r *http.Request, act checkout.Action) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	st, err := s.Dispatch(r.Context(), act)
	if err != nil {
		a.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (a *app) sessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, checkout.ErrSessionClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		a.log.Error(r.Context(), "cart update", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// loginRequest represents login credentials.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int64  `json:"quantity"`
}

type quantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type discountRequest struct {
	Code string `json:"code"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}
