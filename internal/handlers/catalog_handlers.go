package handlers

import (
	"net/http"

	"github.com/tradewisearg/servitec-web/internal/models"
	"github.com/tradewisearg/servitec-web/internal/services"
	"github.com/tradewisearg/servitec-web/pkg/utils"
	"github.com/tradewisearg/servitec-web/pkg/whatsapp"

	"github.com/gin-gonic/gin"
)

// CatalogItem is the public storefront projection of a product. Cost and
// exact stock counts are not exposed.
type CatalogItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	InStock     bool    `json:"in_stock"`
	ImageURL    *string `json:"image_url,omitempty"`
	WhatsAppURL string  `json:"whatsapp_url,omitempty"`
}

// CatalogHandler serves the unauthenticated storefront endpoints.
type CatalogHandler struct {
	inventoryService services.InventoryService
	shopPhone        string
}

// NewCatalogHandler creates a new CatalogHandler. shopPhone is the shop's
// WhatsApp number used to build consultation links; empty disables them.
func NewCatalogHandler(inventoryService services.InventoryService) *CatalogHandler {
	return &CatalogHandler{
		inventoryService: inventoryService,
		shopPhone:        utils.Getenv("SHOP_WHATSAPP", ""),
	}
}

// GetCatalog handles GET /catalog with optional category and sort filters.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	var category *string
	if v := c.Query("category"); v != "" {
		category = &v
	}

	products, err := h.inventoryService.ListProducts(category, c.Query("sort"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]CatalogItem, 0, len(products))
	for _, p := range products {
		items = append(items, h.catalogItem(p))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "categories": models.Categories})
}

// GetCatalogItem handles GET /catalog/:id.
func (h *CatalogHandler) GetCatalogItem(c *gin.Context) {
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
	c.JSON(http.StatusOK, h.catalogItem(*product))
}

func (h *CatalogHandler) catalogItem(p models.Product) CatalogItem {
	item := CatalogItem{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		InStock:  p.Quantity > 0,
		ImageURL: p.ImageURL,
	}
	if h.shopPhone != "" {
		item.WhatsAppURL = whatsapp.ConsultLink(h.shopPhone, p.Name, p.Price)
	}
	return item
}
