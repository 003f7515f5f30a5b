package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
)

type purchaseOrderHandler struct {
	purchaseOrders portssvc.PurchaseOrderSvcFacade
}

// registerPurchaseOrderRoutes registers the vendor purchase order routes.
func registerPurchaseOrderRoutes(rg *gin.RouterGroup, purchaseOrders portssvc.PurchaseOrderSvcFacade) {
	h := &purchaseOrderHandler{purchaseOrders: purchaseOrders}

	po := rg.Group("/purchase-orders")
	{
		po.POST("", h.createPurchaseOrder)
		po.GET("", h.listPurchaseOrders)
		po.GET("/:purchaseOrderID", h.getPurchaseOrder)
		po.PUT("/:purchaseOrderID/status", h.updatePurchaseOrderStatus)
		po.POST("/:purchaseOrderID/receive", h.receivePurchaseOrder)
	}
}

// createPurchaseOrder godoc
// @Summary Create a purchase order
// @Description Creates a DRAFT or PENDING order. A zero total is computed from the items.
// @Tags purchase-orders
// @Accept  json
// @Produce  json
// @Param   purchaseOrder body dto.CreatePurchaseOrderRequest true "Purchase order"
// @Success 201 {object} domain.PurchaseOrder
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /purchase-orders [post]
func (h *purchaseOrderHandler) createPurchaseOrder(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if !bindJSON(c, &req, "CreatePurchaseOrder") {
		return
	}
	po, err := h.purchaseOrders.CreatePurchaseOrder(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to create purchase order")
		return
	}
	c.JSON(http.StatusCreated, po)
}

// listPurchaseOrders godoc
// @Summary List purchase orders
// @Tags purchase-orders
// @Produce  json
// @Param   status query string false "Filter by status" Enums(DRAFT, PENDING, RECEIVED, CANCELLED)
// @Success 200 {array} domain.PurchaseOrder
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Security BearerAuth
// @Router /purchase-orders [get]
func (h *purchaseOrderHandler) listPurchaseOrders(c *gin.Context) {
	var params dto.ListPurchaseOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid query parameters for ListPurchaseOrders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	orders, err := h.purchaseOrders.ListPurchaseOrders(c.Request.Context(), params.Status)
	if err != nil {
		respondError(c, err, "Failed to list purchase orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// getPurchaseOrder godoc
// @Summary Get a purchase order by ID
// @Tags purchase-orders
// @Produce  json
// @Param   purchaseOrderID path string true "Purchase order ID"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 404 {object} ErrorResponse "Purchase order not found"
// @Security BearerAuth
// @Router /purchase-orders/{purchaseOrderID} [get]
func (h *purchaseOrderHandler) getPurchaseOrder(c *gin.Context) {
	po, err := h.purchaseOrders.GetPurchaseOrder(c.Request.Context(), c.Param("purchaseOrderID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve purchase order")
		return
	}
	c.JSON(http.StatusOK, po)
}

// updatePurchaseOrderStatus godoc
// @Summary Change the status of an open purchase order
// @Description Moves DRAFT to PENDING, or an open order to CANCELLED. Receiving has its own endpoint.
// @Tags purchase-orders
// @Accept  json
// @Produce  json
// @Param   purchaseOrderID path string true "Purchase order ID"
// @Param   status body dto.UpdatePurchaseOrderStatusRequest true "New status"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Purchase order not found"
// @Failure 409 {object} ErrorResponse "Order is no longer open"
// @Security BearerAuth
// @Router /purchase-orders/{purchaseOrderID}/status [put]
func (h *purchaseOrderHandler) updatePurchaseOrderStatus(c *gin.Context) {
	var req dto.UpdatePurchaseOrderStatusRequest
	if !bindJSON(c, &req, "UpdatePurchaseOrderStatus") {
		return
	}
	po, err := h.purchaseOrders.UpdatePurchaseOrderStatus(c.Request.Context(), c.Param("purchaseOrderID"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update purchase order")
		return
	}
	c.JSON(http.StatusOK, po)
}

// receivePurchaseOrder godoc
// @Summary Receive a purchase order
// @Description Records the PURCHASE transaction for an open order and marks it RECEIVED.
// @Tags purchase-orders
// @Produce  json
// @Param   purchaseOrderID path string true "Purchase order ID"
// @Success 200 {object} dto.ReceivePurchaseOrderResponse
// @Failure 404 {object} ErrorResponse "Purchase order not found"
// @Failure 409 {object} ErrorResponse "Order is no longer open"
// @Security BearerAuth
// @Router /purchase-orders/{purchaseOrderID}/receive [post]
func (h *purchaseOrderHandler) receivePurchaseOrder(c *gin.Context) {
	po, impact, err := h.purchaseOrders.ReceivePurchaseOrder(c.Request.Context(), c.Param("purchaseOrderID"))
	if err != nil {
		respondError(c, err, "Failed to receive purchase order")
		return
	}
	c.JSON(http.StatusOK, dto.ReceivePurchaseOrderResponse{PurchaseOrder: *po, Impact: impact})
}
