package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
)

// catalogHandler handles master data: accounts, customers, products,
// categories, vendors and the business profile.
type catalogHandler struct {
	catalog portssvc.CatalogSvcFacade
}

// registerCatalogRoutes registers the master data routes.
func registerCatalogRoutes(rg *gin.RouterGroup, catalog portssvc.CatalogSvcFacade) {
	h := &catalogHandler{catalog: catalog}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.upsertAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.upsertAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}

	customers := rg.Group("/customers")
	{
		customers.POST("", h.upsertCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.upsertCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}

	products := rg.Group("/products")
	{
		products.POST("", h.upsertProduct)
		products.GET("", h.listProducts)
		products.GET("/low-stock", h.lowStockProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.upsertProduct)
		products.DELETE("/:id", h.deleteProduct)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.upsertCategory)
		categories.GET("", h.listCategories)
		categories.PUT("/:id", h.upsertCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}

	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.upsertVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:id", h.getVendor)
		vendors.PUT("/:id", h.upsertVendor)
		vendors.DELETE("/:id", h.deleteVendor)
	}

	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.updateProfile)
	rg.GET("/state", h.getState)
}

// savedStatus is 201 for a POST and 200 for a PUT.
func savedStatus(c *gin.Context) int {
	if c.Request.Method == http.MethodPost {
		return http.StatusCreated
	}
	return http.StatusOK
}

// --- Accounts ---

// upsertAccount godoc
// @Summary Create or update an account
// @Description Saves a cash or bank account. The balance is only taken for a new account.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string false "Account ID (PUT only)"
// @Param   account body domain.Account true "Account"
// @Success 200 {object} domain.Account
// @Success 201 {object} domain.Account
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /accounts [post]
// @Router /accounts/{id} [put]
func (h *catalogHandler) upsertAccount(c *gin.Context) {
	var account domain.Account
	if !bindJSON(c, &account, "UpsertAccount") {
		return
	}
	if id := c.Param("id"); id != "" {
		account.ID = id
	}
	saved, err := h.catalog.UpsertAccount(c.Request.Context(), account)
	if err != nil {
		respondError(c, err, "Failed to save account")
		return
	}
	c.JSON(savedStatus(c), saved)
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} domain.Account
// @Security BearerAuth
// @Router /accounts [get]
func (h *catalogHandler) listAccounts(c *gin.Context) {
	accounts, err := h.catalog.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *catalogHandler) getAccount(c *gin.Context) {
	account, err := h.catalog.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// deleteAccount godoc
// @Summary Delete an account
// @Description The cash drawer and the default bank account cannot be deleted.
// @Tags accounts
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Required account"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *catalogHandler) deleteAccount(c *gin.Context) {
	if err := h.catalog.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Customers ---

// upsertCustomer godoc
// @Summary Create or update a customer
// @Description Saves a credit customer. Outstanding credit is only taken for a new customer.
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   id path string false "Customer ID (PUT only)"
// @Param   customer body domain.Customer true "Customer"
// @Success 200 {object} domain.Customer
// @Success 201 {object} domain.Customer
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /customers [post]
// @Router /customers/{id} [put]
func (h *catalogHandler) upsertCustomer(c *gin.Context) {
	var customer domain.Customer
	if !bindJSON(c, &customer, "UpsertCustomer") {
		return
	}
	if id := c.Param("id"); id != "" {
		customer.ID = id
	}
	saved, err := h.catalog.UpsertCustomer(c.Request.Context(), customer)
	if err != nil {
		respondError(c, err, "Failed to save customer")
		return
	}
	if saved.OverLimit() {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Customer is over the credit limit", slog.String("customer_id", saved.ID))
	}
	c.JSON(savedStatus(c), saved)
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce  json
// @Success 200 {array} domain.Customer
// @Security BearerAuth
// @Router /customers [get]
func (h *catalogHandler) listCustomers(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce  json
// @Param   id path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *catalogHandler) getCustomer(c *gin.Context) {
	customer, err := h.catalog.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Tags customers
// @Param   id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *catalogHandler) deleteCustomer(c *gin.Context) {
	if err := h.catalog.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Products ---

// upsertProduct godoc
// @Summary Create or update a product
// @Description Saves a product. Stock is only taken for a new product; afterwards it moves with sales and purchases.
// @Tags products
// @Accept  json
// @Produce  json
// @Param   id path string false "Product ID (PUT only)"
// @Param   product body domain.Product true "Product"
// @Success 200 {object} domain.Product
// @Success 201 {object} domain.Product
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /products [post]
// @Router /products/{id} [put]
func (h *catalogHandler) upsertProduct(c *gin.Context) {
	var product domain.Product
	if !bindJSON(c, &product, "UpsertProduct") {
		return
	}
	if id := c.Param("id"); id != "" {
		product.ID = id
	}
	saved, err := h.catalog.UpsertProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err, "Failed to save product")
		return
	}
	c.JSON(savedStatus(c), saved)
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce  json
// @Success 200 {array} domain.Product
// @Security BearerAuth
// @Router /products [get]
func (h *catalogHandler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// lowStockProducts godoc
// @Summary List products at or below their low stock threshold
// @Tags products
// @Produce  json
// @Success 200 {array} domain.Product
// @Security BearerAuth
// @Router /products/low-stock [get]
func (h *catalogHandler) lowStockProducts(c *gin.Context) {
	products, err := h.catalog.LowStockProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list low stock products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// getProduct godoc
// @Summary Get a product by ID
// @Tags products
// @Produce  json
// @Param   id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *catalogHandler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// deleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Param   id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *catalogHandler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Categories ---

// upsertCategory godoc
// @Summary Create or update a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   id path string false "Category ID (PUT only)"
// @Param   category body domain.Category true "Category"
// @Success 200 {object} domain.Category
// @Success 201 {object} domain.Category
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /categories [post]
// @Router /categories/{id} [put]
func (h *catalogHandler) upsertCategory(c *gin.Context) {
	var category domain.Category
	if !bindJSON(c, &category, "UpsertCategory") {
		return
	}
	if id := c.Param("id"); id != "" {
		category.ID = id
	}
	saved, err := h.catalog.UpsertCategory(c.Request.Context(), category)
	if err != nil {
		respondError(c, err, "Failed to save category")
		return
	}
	c.JSON(savedStatus(c), saved)
}

// listCategories godoc
// @Summary List categories
// @Tags categories
// @Produce  json
// @Success 200 {array} domain.Category
// @Security BearerAuth
// @Router /categories [get]
func (h *catalogHandler) listCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Products filed under the category are kept without a category.
// @Tags categories
// @Param   id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *catalogHandler) deleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Vendors ---

// upsertVendor godoc
// @Summary Create or update a vendor
// @Tags vendors
// @Accept  json
// @Produce  json
// @Param   id path string false "Vendor ID (PUT only)"
// @Param   vendor body domain.Vendor true "Vendor"
// @Success 200 {object} domain.Vendor
// @Success 201 {object} domain.Vendor
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /vendors [post]
// @Router /vendors/{id} [put]
func (h *catalogHandler) upsertVendor(c *gin.Context) {
	var vendor domain.Vendor
	if !bindJSON(c, &vendor, "UpsertVendor") {
		return
	}
	if id := c.Param("id"); id != "" {
		vendor.ID = id
	}
	saved, err := h.catalog.UpsertVendor(c.Request.Context(), vendor)
	if err != nil {
		respondError(c, err, "Failed to save vendor")
		return
	}
	c.JSON(savedStatus(c), saved)
}

// listVendors godoc
// @Summary List vendors
// @Tags vendors
// @Produce  json
// @Success 200 {array} domain.Vendor
// @Security BearerAuth
// @Router /vendors [get]
func (h *catalogHandler) listVendors(c *gin.Context) {
	vendors, err := h.catalog.ListVendors(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list vendors")
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// getVendor godoc
// @Summary Get a vendor by ID
// @Tags vendors
// @Produce  json
// @Param   id path string true "Vendor ID"
// @Success 200 {object} domain.Vendor
// @Failure 404 {object} ErrorResponse "Vendor not found"
// @Security BearerAuth
// @Router /vendors/{id} [get]
func (h *catalogHandler) getVendor(c *gin.Context) {
	vendor, err := h.catalog.GetVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve vendor")
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// deleteVendor godoc
// @Summary Delete a vendor
// @Tags vendors
// @Param   id path string true "Vendor ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Vendor not found"
// @Security BearerAuth
// @Router /vendors/{id} [delete]
func (h *catalogHandler) deleteVendor(c *gin.Context) {
	if err := h.catalog.DeleteVendor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete vendor")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Profile & state ---

// getProfile godoc
// @Summary Get the business profile
// @Tags profile
// @Produce  json
// @Success 200 {object} domain.UserProfile
// @Security BearerAuth
// @Router /profile [get]
func (h *catalogHandler) getProfile(c *gin.Context) {
	profile, err := h.catalog.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// updateProfile godoc
// @Summary Update the business profile
// @Tags profile
// @Accept  json
// @Produce  json
// @Param   profile body domain.UserProfile true "Profile"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /profile [put]
func (h *catalogHandler) updateProfile(c *gin.Context) {
	var profile domain.UserProfile
	if !bindJSON(c, &profile, "UpdateProfile") {
		return
	}
	saved, err := h.catalog.UpdateProfile(c.Request.Context(), profile)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// getState godoc
// @Summary Get the whole entity store
// @Description Read-only copy of every collection, in the persisted snapshot layout.
// @Tags state
// @Produce  json
// @Success 200 {object} dto.StateResponse
// @Security BearerAuth
// @Router /state [get]
func (h *catalogHandler) getState(c *gin.Context) {
	st, err := h.catalog.State(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to read state")
		return
	}
	c.JSON(http.StatusOK, dto.StateResponse{State: st})
}
