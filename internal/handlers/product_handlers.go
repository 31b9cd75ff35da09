package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tradewisearg/servitec-web/internal/middleware"
	"github.com/tradewisearg/servitec-web/internal/services"
	"github.com/tradewisearg/servitec-web/pkg/utils"

	"github.com/gin-gonic/gin"
)

// maxImageUploadBytes caps product image uploads at 10 MB.
const maxImageUploadBytes = 10 << 20

var errImageTooLarge = errors.New("image file exceeds the 10 MB limit")

// ProductHandler exposes the inventory CRUD and sale endpoints.
type ProductHandler struct {
	inventoryService services.InventoryService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(inventoryService services.InventoryService) *ProductHandler {
	return &ProductHandler{inventoryService: inventoryService}
}

// CreateProduct handles POST /products. The payload is either JSON or a
// multipart form; the multipart form may carry an optional "image" file.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		parsed, err := parseProductForm(c)
		if err != nil {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		req = *parsed
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), req, middleware.ActorEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func parseProductForm(c *gin.Context) (*services.CreateProductRequest, error) {
	req := &services.CreateProductRequest{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Category: c.PostForm("category"),
	}

	var err error
	if req.Cost, err = strconv.ParseFloat(c.DefaultPostForm("cost", "0"), 64); err != nil {
		return nil, err
	}
	if req.Price, err = strconv.ParseFloat(c.DefaultPostForm("price", "0"), 64); err != nil {
		return nil, err
	}
	if req.Quantity, err = strconv.Atoi(c.DefaultPostForm("quantity", "0")); err != nil {
		return nil, err
	}

	file, err := c.FormFile("image")
	if err == http.ErrMissingFile {
		return req, nil
	}
	if err != nil {
		return nil, err
	}
	if file.Size > maxImageUploadBytes {
		return nil, errImageTooLarge
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	req.Image, err = io.ReadAll(io.LimitReader(f, maxImageUploadBytes))
	if err != nil {
		return nil, err
	}
	return req, nil
}

// GetProducts handles GET /products with optional category and sort filters.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var category *string
	if v := c.Query("category"); v != "" {
		category = &v
	}

	products, err := h.inventoryService.ListProducts(category, c.Query("sort"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProductByID handles GET /products/:id.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.inventoryService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	product, err := h.inventoryService.UpdateProduct(id, req, middleware.ActorEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id. Ledger entries for the
// product are retained.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.inventoryService.DeleteProduct(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// RecordSale handles POST /sales.
func (h *ProductHandler) RecordSale(c *gin.Context) {
	var req services.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.inventoryService.RecordSale(req, middleware.ActorEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
