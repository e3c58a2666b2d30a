package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// AddImageRequest adds an image URL to a product
type AddImageRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// List godoc
// @Summary  List active products, optionally filtered by category
// @Tags     products
// @Produce  json
// @Param    category query string false "Category slug"
// @Success  200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Router   /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	page, err := h.productService.List(c.Request.Context(), c.Query("category"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// GetBySlug godoc
// @Summary  Get a product page by slug
// @Tags     products
// @Produce  json
// @Param    slug path string true "Product slug"
// @Success  200 {object} APIResponse[catalogapp.ProductResponse]
// @Router   /products/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Product slug is required")
		return
	}

	product, err := h.productService.GetBySlug(c.Request.Context(), slug, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdminCreate godoc
// @Summary  Create a product (admin)
// @Tags     admin-products
// @Accept   json
// @Produce  json
// @Param    request body catalogapp.CreateProductRequest true "Product"
// @Success  201 {object} APIResponse[catalogapp.ProductResponse]
// @Security BearerAuth
// @Router   /admin/products [post]
func (h *ProductHandler) AdminCreate(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// AdminUpdate godoc
// @Summary  Update a product (admin)
// @Tags     admin-products
// @Accept   json
// @Produce  json
// @Param    id path string true "Product ID" format(uuid)
// @Param    request body catalogapp.UpdateProductRequest true "Product update"
// @Success  200 {object} APIResponse[catalogapp.ProductResponse]
// @Security BearerAuth
// @Router   /admin/products/{id} [put]
func (h *ProductHandler) AdminUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdminAddVariant godoc
// @Summary  Add a variant to a product (admin)
// @Tags     admin-products
// @Accept   json
// @Produce  json
// @Param    id path string true "Product ID" format(uuid)
// @Param    request body catalogapp.AddVariantRequest true "Variant"
// @Success  200 {object} APIResponse[catalogapp.ProductResponse]
// @Security BearerAuth
// @Router   /admin/products/{id}/variants [post]
func (h *ProductHandler) AdminAddVariant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.AddVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.AddVariant(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdminRemoveVariant godoc
// @Summary  Remove a variant from a product (admin)
// @Tags     admin-products
// @Produce  json
// @Param    id path string true "Product ID" format(uuid)
// @Param    variant_id path string true "Variant ID" format(uuid)
// @Success  200 {object} APIResponse[catalogapp.ProductResponse]
// @Security BearerAuth
// @Router   /admin/products/{id}/variants/{variant_id} [delete]
func (h *ProductHandler) AdminRemoveVariant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	variantID, err := uuid.Parse(c.Param("variant_id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	product, err := h.productService.RemoveVariant(c.Request.Context(), id, variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdminAddImage godoc
// @Summary  Add an image URL to a product (admin)
// @Tags     admin-products
// @Accept   json
// @Produce  json
// @Param    id path string true "Product ID" format(uuid)
// @Param    request body AddImageRequest true "Image URL"
// @Success  200 {object} APIResponse[catalogapp.ProductResponse]
// @Security BearerAuth
// @Router   /admin/products/{id}/images [post]
func (h *ProductHandler) AdminAddImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.AddImage(c.Request.Context(), id, req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdminDelete godoc
// @Summary  Delete a product (admin)
// @Tags     admin-products
// @Param    id path string true "Product ID" format(uuid)
// @Success  204
// @Security BearerAuth
// @Router   /admin/products/{id} [delete]
func (h *ProductHandler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
