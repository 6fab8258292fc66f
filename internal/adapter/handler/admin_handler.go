package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/core/service"
)

// Admin surface. Access control is a storefront-UI concern in this system
// (permission flags gate panels client-side); the API itself stays open
// the way the original backend did.
func (h *HTTPHandler) registerAdmin(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/products", h.AdminCreateProduct)
	mux.HandleFunc("PUT /api/admin/products/{id}", h.AdminUpdateProduct)
	mux.HandleFunc("DELETE /api/admin/products/{id}", h.AdminDeleteProduct)

	mux.HandleFunc("POST /api/admin/categories", h.AdminAddCategory)
	mux.HandleFunc("PUT /api/admin/categories/{name}", h.AdminRenameCategory)
	mux.HandleFunc("DELETE /api/admin/categories/{name}", h.AdminDeleteCategory)

	mux.HandleFunc("GET /api/admin/promos", h.AdminListPromos)
	mux.HandleFunc("POST /api/admin/promos", h.AdminCreatePromo)
	mux.HandleFunc("DELETE /api/admin/promos/{code}", h.AdminDeletePromo)

	mux.HandleFunc("GET /api/admin/orders", h.AdminListOrders)
	mux.HandleFunc("PUT /api/admin/orders/{id}/status", h.AdminUpdateOrderStatus)
	mux.HandleFunc("DELETE /api/admin/orders/{id}", h.AdminDeleteOrder)

	mux.HandleFunc("GET /api/admin/settings/shipping", h.AdminGetShipping)
	mux.HandleFunc("PUT /api/admin/settings/shipping", h.AdminSetShipping)

	mux.HandleFunc("GET /api/admin/users", h.AdminListUsers)
	mux.HandleFunc("PUT /api/admin/users/{id}/role", h.AdminSetUserRole)
	mux.HandleFunc("PUT /api/admin/users/{id}/permissions", h.AdminSetUserPermissions)
	mux.HandleFunc("DELETE /api/admin/users/{id}", h.AdminDeleteUser)
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Discount    string `json:"discount"`
	Stock       *int   `json:"stock"`
	Category    string `json:"category"`
}

func (p productRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Discount:    p.Discount,
		Stock:       p.Stock,
		Category:    p.Category,
	}
}

func (h *HTTPHandler) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	product, err := h.catalog.CreateProduct(r.Context(), req.input())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response{Success: true, Data: product})
}

func (h *HTTPHandler) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	product, err := h.catalog.UpdateProduct(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, product)
}

func (h *HTTPHandler) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *HTTPHandler) AdminAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.catalog.AddCategory(r.Context(), req.Name); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response{Success: true})
}

func (h *HTTPHandler) AdminRenameCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.catalog.RenameCategory(r.Context(), r.PathValue("name"), req.Name); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}

func (h *HTTPHandler) AdminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), r.PathValue("name")); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}

func (h *HTTPHandler) AdminListPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.promos.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, promos)
}

type promoRequest struct {
	Code     string `json:"code"`
	Discount string `json:"discount"`
}

func (h *HTTPHandler) AdminCreatePromo(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	discount, err := decimal.NewFromString(req.Discount)
	if err != nil {
		badRequest(w, "discount must be numeric")
		return
	}
	promo, err := h.promos.Create(r.Context(), req.Code, discount)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response{Success: true, Data: promo})
}

func (h *HTTPHandler) AdminDeletePromo(w http.ResponseWriter, r *http.Request) {
	if err := h.promos.Delete(r.Context(), r.PathValue("code")); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}

func (h *HTTPHandler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *HTTPHandler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	advisory, err := h.orders.UpdateStatus(r.Context(), r.PathValue("id"), domain.OrderStatus(req.Status))
	if err != nil {
		h.fail(w, err)
		return
	}
	resp := response{Success: true}
	if advisory {
		resp.Message = "transition leaves the usual workflow"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) AdminDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}

func (h *HTTPHandler) AdminGetShipping(w http.ResponseWriter, r *http.Request) {
	cost, err := h.settings.ShippingCost(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, map[string]string{"shipping_cost": cost.String()})
}

type shippingRequest struct {
	ShippingCost string `json:"shipping_cost"`
}

func (h *HTTPHandler) AdminSetShipping(w http.ResponseWriter, r *http.Request) {
	var req shippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	cost, err := h.settings.SetShippingCost(r.Context(), req.ShippingCost)
	if err != nil {
		// A rejected write is a validation failure, not a config error.
		badRequest(w, err.Error())
		return
	}
	ok(w, map[string]string{"shipping_cost": cost.String()})
}

func (h *HTTPHandler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	ok(w, users)
}

type roleRequest struct {
	Role string `json:"role"`
}

func (h *HTTPHandler) AdminSetUserRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.users.SetRole(r.Context(), r.PathValue("id"), domain.Role(req.Role)); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}

type permissionsRequest struct {
	Permissions []string `json:"permissions"`
}

func (h *HTTPHandler) AdminSetUserPermissions(w http.ResponseWriter, r *http.Request) {
	var req permissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.users.SetPermissions(r.Context(), r.PathValue("id"), req.Permissions); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}

func (h *HTTPHandler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Remove(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	ok(w, nil)
}
