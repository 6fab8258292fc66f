package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/core/service"
)

const sessionCookie = "cart_session"

// HTTPHandler exposes the storefront and admin surfaces as JSON over
// net/http. Every response uses the {success, message, data} envelope;
// collaborator failures never leak raw errors to the client.
type HTTPHandler struct {
	catalog  *service.CatalogService
	carts    *service.CartService
	promos   *service.PromoService
	orders   *service.OrderService
	users    *service.UserService
	settings *service.SettingsService
	logger   *zap.Logger
}

func NewHTTPHandler(
	catalog *service.CatalogService,
	carts *service.CartService,
	promos *service.PromoService,
	orders *service.OrderService,
	users *service.UserService,
	settings *service.SettingsService,
	logger *zap.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		catalog:  catalog,
		carts:    carts,
		promos:   promos,
		orders:   orders,
		users:    users,
		settings: settings,
		logger:   logger,
	}
}

// Register wires every route onto the mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)

	// Storefront.
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.ProductDetail)
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddToCart)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.SetCartQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveFromCart)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)
	mux.HandleFunc("POST /api/promo/apply", h.ApplyPromo)
	mux.HandleFunc("POST /api/checkout", h.Checkout)
	mux.HandleFunc("GET /api/orders", h.MyOrders)

	// Accounts.
	mux.HandleFunc("POST /api/register", h.RegisterUser)
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.Logout)

	h.registerAdmin(mux)
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

// fail translates service errors into the envelope. Unrecognized errors
// are logged and reported as a generic failure.
func (h *HTTPHandler) fail(w http.ResponseWriter, err error) {
	var limitErr *domain.StockLimitError
	switch {
	case errors.As(err, &limitErr):
		writeJSON(w, http.StatusConflict, response{Success: false, Message: limitErr.Error()})
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, domain.ErrItemNotInCart):
		writeJSON(w, http.StatusNotFound, response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrPromoNotFound),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrBadStatus),
		errors.Is(err, service.ErrDiscountRange),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownPermission),
		errors.Is(err, service.ErrBadRole),
		errors.Is(err, domain.ErrBadPrice),
		errors.Is(err, domain.ErrPromoDiscountRange):
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrPromoExists),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrShippingCostUnset):
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Message: err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Message: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, response{Success: false, Message: message})
}

// sessionID reads the cart session cookie, minting one on first contact.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, products)
}

// ProductDetail is the storefront read that also bumps the view counter.
func (h *HTTPHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.ViewProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, product)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, cats)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Cart(r.Context(), sessionID(w, r))
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, cart)
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ProductID == "" {
		badRequest(w, "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := h.carts.Add(r.Context(), sessionID(w, r), req.ProductID, req.Quantity)
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, cart)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *HTTPHandler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	cart, err := h.carts.SetQuantity(r.Context(), sessionID(w, r), r.PathValue("id"), req.Quantity)
	var limitErr *domain.StockLimitError
	if errors.As(err, &limitErr) {
		// Quantity was clamped and saved; tell the user the ceiling but
		// return the adjusted cart.
		writeJSON(w, http.StatusConflict, response{Success: false, Message: limitErr.Error(), Data: cart})
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, cart)
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Remove(r.Context(), sessionID(w, r), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, cart)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), sessionID(w, r)); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}

type applyPromoRequest struct {
	Code string `json:"code"`
}

func (h *HTTPHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req applyPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	promo, err := h.promos.Apply(r.Context(), req.Code)
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, promo)
}

type checkoutRequest struct {
	UserID    *string                `json:"user_id,omitempty"`
	PromoCode string                 `json:"promo_code,omitempty"`
	Shipping  domain.ShippingDetails `json:"shipping"`
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Shipping.Name == "" || req.Shipping.Phone == "" || req.Shipping.Address == "" {
		badRequest(w, "name, phone and address are required")
		return
	}
	if req.Shipping.PaymentMethod == "" {
		req.Shipping.PaymentMethod = "cod"
	}

	var promo *domain.PromoCode
	if req.PromoCode != "" {
		var err error
		promo, err = h.promos.Apply(r.Context(), req.PromoCode)
		if err != nil {
			h.fail(w, err)
			return
		}
	}

	order, err := h.orders.CreateOrder(r.Context(), sessionID(w, r), req.UserID, req.Shipping, promo)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response{Success: true, Data: order})
}

func (h *HTTPHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}
	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, orders)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HTTPHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response{Success: true, Message: "account created", Data: user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, user)
}

// Logout clears the session's cart; identity is the client's concern in
// this prototype-grade auth model.
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), sessionID(w, r)); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}
