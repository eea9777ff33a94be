package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"atelier/internal/domain"
	"atelier/internal/service"
)

// ShopHandler exposes the service as a named-call API: every operation
// is invoked by method name with positional arguments, mirroring the
// desktop client's IPC surface.
type ShopHandler struct {
	svc *service.ShopService
	log zerolog.Logger
}

// NewShopHandler creates a new shop handler
func NewShopHandler(svc *service.ShopService, log zerolog.Logger) *ShopHandler {
	return &ShopHandler{svc: svc, log: log}
}

// ErrorResponse is the JSON body returned for failed calls.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// invokeRequest is one named call with positional arguments.
type invokeRequest struct {
	Method string            `json:"method"`
	Args   []json.RawMessage `json:"args"`
}

// Invoke dispatches a named call. Read methods degrade on storage
// failure: the error is logged and an empty result is returned, so a
// damaged database still renders as an empty shop. Write methods
// propagate their errors to the caller.
func (h *ShopHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Method == "" {
		h.writeError(w, "Method is required", "", http.StatusBadRequest)
		return
	}

	fn, ok := h.methods()[req.Method]
	if !ok {
		h.writeError(w, "Unknown method", req.Method, http.StatusNotFound)
		return
	}

	fn(w, r, req.Args)
}

// invokeFunc handles one named method.
type invokeFunc func(w http.ResponseWriter, r *http.Request, args []json.RawMessage)

func (h *ShopHandler) methods() map[string]invokeFunc {
	return map[string]invokeFunc{
		"get-dashboard-stats": h.getDashboardStats,

		"get-customers":      h.getCustomers,
		"get-customer-by-id": h.getCustomerByID,
		"create-customer":    h.createCustomer,
		"update-customer":    h.updateCustomer,
		"delete-customer":    h.deleteCustomer,
		"search-customers":   h.searchCustomers,

		"get-products":           h.getProducts,
		"get-product-by-id":      h.getProductByID,
		"create-product":         h.createProduct,
		"update-product":         h.updateProduct,
		"delete-product":         h.deleteProduct,
		"search-products":        h.searchProducts,
		"get-product-categories": h.getProductCategories,

		"get-measurements":      h.getMeasurements,
		"get-measurement-by-id": h.getMeasurementByID,
		"create-measurement":    h.createMeasurement,
		"update-measurement":    h.updateMeasurement,
		"delete-measurement":    h.deleteMeasurement,

		"get-orders":      h.getOrders,
		"get-order-by-id": h.getOrderByID,
		"create-order":    h.createOrder,
		"update-order":    h.updateOrder,
		"delete-order":    h.deleteOrder,
		"add-order-item":  h.addOrderItem,
		"get-order-items": h.getOrderItems,
	}
}

// ============================================================================
// Dashboard
// ============================================================================

func (h *ShopHandler) getDashboardStats(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	stats, err := h.svc.DashboardStats(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("dashboard stats failed, returning empty")
		h.writeJSON(w, &domain.DashboardStats{}, http.StatusOK)
		return
	}
	h.writeJSON(w, stats, http.StatusOK)
}

// ============================================================================
// Customers
// ============================================================================

func (h *ShopHandler) getCustomers(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	limit, offset := pageArgs(args, 0)
	customers, err := h.svc.ListCustomers(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list customers failed, returning empty")
		customers = []domain.Customer{}
	}
	h.writeJSON(w, customers, http.StatusOK)
}

func (h *ShopHandler) getCustomerByID(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid customer ID", err.Error(), http.StatusBadRequest)
		return
	}

	customer, err := h.svc.GetCustomer(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("get customer failed, returning null")
		customer = nil
	}
	h.writeJSON(w, customer, http.StatusOK)
}

func (h *ShopHandler) createCustomer(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	var customer domain.Customer
	if err := structArg(args, 0, &customer); err != nil {
		h.writeError(w, "Invalid customer payload", err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateCustomer(r.Context(), &customer)
	if err != nil {
		h.writeWriteError(w, "Failed to create customer", err)
		return
	}
	h.writeJSON(w, created, http.StatusCreated)
}

func (h *ShopHandler) updateCustomer(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid customer ID", err.Error(), http.StatusBadRequest)
		return
	}
	var customer domain.Customer
	if err := structArg(args, 1, &customer); err != nil {
		h.writeError(w, "Invalid customer payload", err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.UpdateCustomer(r.Context(), id, &customer)
	if err != nil {
		h.writeWriteError(w, "Failed to update customer", err)
		return
	}
	h.writeJSON(w, updated, http.StatusOK)
}

func (h *ShopHandler) deleteCustomer(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid customer ID", err.Error(), http.StatusBadRequest)
		return
	}

	affected, err := h.svc.DeleteCustomer(r.Context(), id)
	if err != nil {
		h.writeWriteError(w, "Failed to delete customer", err)
		return
	}
	h.writeJSON(w, map[string]int64{"deleted": affected}, http.StatusOK)
}

func (h *ShopHandler) searchCustomers(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	query, err := stringArg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid search query", err.Error(), http.StatusBadRequest)
		return
	}

	customers, err := h.svc.SearchCustomers(r.Context(), query)
	if err != nil {
		h.log.Error().Err(err).Str("query", query).Msg("search customers failed, returning empty")
		customers = []domain.Customer{}
	}
	h.writeJSON(w, customers, http.StatusOK)
}

// ============================================================================
// Products
// ============================================================================

func (h *ShopHandler) getProducts(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	limit, offset := pageArgs(args, 0)
	products, err := h.svc.ListProducts(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list products failed, returning empty")
		products = []domain.Product{}
	}
	h.writeJSON(w, products, http.StatusOK)
}

func (h *ShopHandler) getProductByID(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid product ID", err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("get product failed, returning null")
		product = nil
	}
	h.writeJSON(w, product, http.StatusOK)
}

func (h *ShopHandler) createProduct(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	var product domain.Product
	if err := structArg(args, 0, &product); err != nil {
		h.writeError(w, "Invalid product payload", err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateProduct(r.Context(), &product)
	if err != nil {
		h.writeWriteError(w, "Failed to create product", err)
		return
	}
	h.writeJSON(w, created, http.StatusCreated)
}

func (h *ShopHandler) updateProduct(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid product ID", err.Error(), http.StatusBadRequest)
		return
	}
	var product domain.Product
	if err := structArg(args, 1, &product); err != nil {
		h.writeError(w, "Invalid product payload", err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.UpdateProduct(r.Context(), id, &product)
	if err != nil {
		h.writeWriteError(w, "Failed to update product", err)
		return
	}
	h.writeJSON(w, updated, http.StatusOK)
}

func (h *ShopHandler) deleteProduct(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid product ID", err.Error(), http.StatusBadRequest)
		return
	}

	affected, err := h.svc.DeleteProduct(r.Context(), id)
	if err != nil {
		h.writeWriteError(w, "Failed to delete product", err)
		return
	}
	h.writeJSON(w, map[string]int64{"deleted": affected}, http.StatusOK)
}

func (h *ShopHandler) searchProducts(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	query, err := stringArg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid search query", err.Error(), http.StatusBadRequest)
		return
	}

	products, err := h.svc.SearchProducts(r.Context(), query)
	if err != nil {
		h.log.Error().Err(err).Str("query", query).Msg("search products failed, returning empty")
		products = []domain.Product{}
	}
	h.writeJSON(w, products, http.StatusOK)
}

func (h *ShopHandler) getProductCategories(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list categories failed, returning empty")
		categories = []domain.ProductCategory{}
	}
	h.writeJSON(w, categories, http.StatusOK)
}

// ============================================================================
// Measurements
// ============================================================================

func (h *ShopHandler) getMeasurements(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	// First argument is an optional customer id; null lists across all
	// customers. Paging follows.
	var customerID int64
	if len(args) > 0 && string(args[0]) != "null" {
		id, err := int64Arg(args, 0)
		if err != nil {
			h.writeError(w, "Invalid customer ID", err.Error(), http.StatusBadRequest)
			return
		}
		customerID = id
	}
	limit, offset := pageArgs(args, 1)

	measurements, err := h.svc.ListMeasurements(r.Context(), customerID, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list measurements failed, returning empty")
		measurements = []domain.Measurement{}
	}
	h.writeJSON(w, measurements, http.StatusOK)
}

func (h *ShopHandler) getMeasurementByID(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid measurement ID", err.Error(), http.StatusBadRequest)
		return
	}

	measurement, err := h.svc.GetMeasurement(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("get measurement failed, returning null")
		measurement = nil
	}
	h.writeJSON(w, measurement, http.StatusOK)
}

func (h *ShopHandler) createMeasurement(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	var measurement domain.Measurement
	if err := structArg(args, 0, &measurement); err != nil {
		h.writeError(w, "Invalid measurement payload", err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateMeasurement(r.Context(), &measurement)
	if err != nil {
		h.writeWriteError(w, "Failed to create measurement", err)
		return
	}
	h.writeJSON(w, created, http.StatusCreated)
}

func (h *ShopHandler) updateMeasurement(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid measurement ID", err.Error(), http.StatusBadRequest)
		return
	}
	var measurement domain.Measurement
	if err := structArg(args, 1, &measurement); err != nil {
		h.writeError(w, "Invalid measurement payload", err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.UpdateMeasurement(r.Context(), id, &measurement)
	if err != nil {
		h.writeWriteError(w, "Failed to update measurement", err)
		return
	}
	h.writeJSON(w, updated, http.StatusOK)
}

func (h *ShopHandler) deleteMeasurement(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid measurement ID", err.Error(), http.StatusBadRequest)
		return
	}

	affected, err := h.svc.DeleteMeasurement(r.Context(), id)
	if err != nil {
		h.writeWriteError(w, "Failed to delete measurement", err)
		return
	}
	h.writeJSON(w, map[string]int64{"deleted": affected}, http.StatusOK)
}

// ============================================================================
// Orders
// ============================================================================

func (h *ShopHandler) getOrders(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	limit, offset := pageArgs(args, 0)
	orders, err := h.svc.ListOrders(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list orders failed, returning empty")
		orders = []domain.Order{}
	}
	h.writeJSON(w, orders, http.StatusOK)
}

func (h *ShopHandler) getOrderByID(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid order ID", err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("get order failed, returning null")
		order = nil
	}
	h.writeJSON(w, order, http.StatusOK)
}

func (h *ShopHandler) createOrder(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	var order domain.Order
	if err := structArg(args, 0, &order); err != nil {
		h.writeError(w, "Invalid order payload", err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateOrder(r.Context(), &order)
	if err != nil {
		h.writeWriteError(w, "Failed to create order", err)
		return
	}
	h.writeJSON(w, created, http.StatusCreated)
}

func (h *ShopHandler) updateOrder(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid order ID", err.Error(), http.StatusBadRequest)
		return
	}
	var order domain.Order
	if err := structArg(args, 1, &order); err != nil {
		h.writeError(w, "Invalid order payload", err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.UpdateOrder(r.Context(), id, &order)
	if err != nil {
		h.writeWriteError(w, "Failed to update order", err)
		return
	}
	h.writeJSON(w, updated, http.StatusOK)
}

func (h *ShopHandler) deleteOrder(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	id, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid order ID", err.Error(), http.StatusBadRequest)
		return
	}

	affected, err := h.svc.DeleteOrder(r.Context(), id)
	if err != nil {
		h.writeWriteError(w, "Failed to delete order", err)
		return
	}
	h.writeJSON(w, map[string]int64{"deleted": affected}, http.StatusOK)
}

func (h *ShopHandler) addOrderItem(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	var item domain.OrderItem
	if err := structArg(args, 0, &item); err != nil {
		h.writeError(w, "Invalid order item payload", err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.AddOrderItem(r.Context(), &item)
	if err != nil {
		h.writeWriteError(w, "Failed to add order item", err)
		return
	}
	h.writeJSON(w, created, http.StatusCreated)
}

func (h *ShopHandler) getOrderItems(w http.ResponseWriter, r *http.Request, args []json.RawMessage) {
	orderID, err := int64Arg(args, 0)
	if err != nil {
		h.writeError(w, "Invalid order ID", err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.svc.ListOrderItems(r.Context(), orderID)
	if err != nil {
		h.log.Error().Err(err).Int64("order_id", orderID).Msg("list order items failed, returning empty")
		items = []domain.OrderItem{}
	}
	h.writeJSON(w, items, http.StatusOK)
}

// ============================================================================
// Export
// ============================================================================

// Export streams a full-dataset backup in the requested format.
func (h *ShopHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		data, err := h.svc.ExportJSON(r.Context())
		if err != nil {
			h.log.Error().Err(err).Msg("json export failed")
			h.writeError(w, "Failed to export", err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=atelier.json")
		w.Write(data)

	case "yaml", "yml":
		w.Header().Set("Content-Type", "application/x-yaml")
		w.Header().Set("Content-Disposition", "attachment; filename=atelier.yml")
		if err := h.svc.ExportYAML(r.Context(), w); err != nil {
			h.log.Error().Err(err).Msg("yaml export failed")
			// Can't write error response as we already set headers
			return
		}

	default:
		h.writeError(w, "Unknown export format", format, http.StatusBadRequest)
	}
}

// ============================================================================
// Argument and response helpers
// ============================================================================

func int64Arg(args []json.RawMessage, i int) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("argument %d missing", i)
	}
	var v int64
	if err := json.Unmarshal(args[i], &v); err != nil {
		return 0, fmt.Errorf("argument %d: %w", i, err)
	}
	return v, nil
}

func stringArg(args []json.RawMessage, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("argument %d missing", i)
	}
	var v string
	if err := json.Unmarshal(args[i], &v); err != nil {
		return "", fmt.Errorf("argument %d: %w", i, err)
	}
	return v, nil
}

func structArg(args []json.RawMessage, i int, out any) error {
	if i >= len(args) {
		return fmt.Errorf("argument %d missing", i)
	}
	if err := json.Unmarshal(args[i], out); err != nil {
		return fmt.Errorf("argument %d: %w", i, err)
	}
	return nil
}

// pageArgs reads optional limit and offset arguments starting at index
// i, defaulting to 100 and 0 when absent or malformed. An explicit
// limit of 0 is honored and returns no rows.
func pageArgs(args []json.RawMessage, i int) (limit, offset int64) {
	limit, offset = 100, 0
	if v, err := int64Arg(args, i); err == nil && v >= 0 {
		limit = v
	}
	if v, err := int64Arg(args, i+1); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

func (h *ShopHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *ShopHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.log.Error().Err(err).Msg("failed to encode error response")
	}
}

// writeWriteError maps a failed write to a status code: validation
// rejections are the caller's fault, everything else is the server's.
func (h *ShopHandler) writeWriteError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	if isValidationError(err) {
		status = http.StatusBadRequest
	}
	h.log.Error().Err(err).Msg(msg)
	h.writeError(w, msg, err.Error(), status)
}
