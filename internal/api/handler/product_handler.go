package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/storefront-api/internal/api/metrics"
	"github.com/gamevault/storefront-api/internal/core/domain"
	"github.com/gamevault/storefront-api/internal/core/ports"
)

// maxImagesPerRequest caps how many image files a single create/update call
// may carry; excess is rejected here, before media validation runs.
const maxImagesPerRequest = 5

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service ports.ProductService
	media   ports.MediaService
}

func NewProductHandler(service ports.ProductService, media ports.MediaService) *ProductHandler {
	return &ProductHandler{service: service, media: media}
}

// List handles GET /api/products with optional category/platform/search/sort
// query parameters.
//
// @Summary      List products with filters
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category id"
// @Param        platform  query     string  false  "Platform"
// @Param        search    query     string  false  "Case-insensitive substring over name/description/tags"
// @Param        sort      query     string  false  "price_asc | price_desc | name"
// @Success      200       {array}   domain.Product
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context(), ports.ListProductsInput{
		Category: c.QueryParam("category"),
		Platform: c.QueryParam("platform"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Featured handles GET /api/products/featured.
//
// @Summary      List up to 8 featured products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/products/featured [get]
func (h *ProductHandler) Featured(c echo.Context) error {
	products, err := h.service.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /api/products (admin only, multipart). Images are
// uploaded before the product document is written, so a late write failure
// can only orphan blobs, never reference missing ones.
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        images  formData  file  false  "Up to 5 image files"
// @Success      201     {object}  domain.Product
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      413     {object}  errorResponse
// @Failure      415     {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, err := decodeCreateProductForm(values)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	urls, err := h.uploadImages(c)
	if err != nil {
		return err
	}
	input.ImageURLs = urls

	product, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("product", "create").Inc()
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/products/:id (admin only, multipart). Newly
// uploaded images are appended to the existing list; all other fields follow
// present-overwrites, absent-keeps semantics.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Product id"
// @Param        images  formData  file    false  "Up to 5 additional image files"
// @Success      200     {object}  domain.Product
// @Failure      404     {object}  errorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, err := decodeUpdateProductForm(values)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	urls, err := h.uploadImages(c)
	if err != nil {
		return err
	}
	input.NewImageURLs = urls

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("product", "update").Inc()
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/products/:id (admin only).
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("product", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Product removed"})
}

// uploadImages streams the request's image files to object storage and
// returns their public URLs. Requests without files yield an empty list.
func (h *ProductHandler) uploadImages(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all: nothing to upload.
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxImagesPerRequest {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "a maximum of 5 images can be uploaded")
	}

	uploads := make([]ports.FileUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
		}
		opened = append(opened, src)
		uploads = append(uploads, ports.FileUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     src,
		})
	}

	urls, err := h.media.UploadAll(c.Request().Context(), uploads)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedMedia) || errors.Is(err, domain.ErrFileTooLarge) {
			metrics.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.MediaUploadsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	for _, u := range uploads {
		metrics.MediaUploadsTotal.WithLabelValues("success").Inc()
		metrics.MediaUploadBytes.Observe(float64(u.Size))
	}
	return urls, nil
}
