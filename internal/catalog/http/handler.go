package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"price-tracker/internal/cascade"
	"price-tracker/internal/catalog"
	"price-tracker/internal/prices"

	"github.com/gin-gonic/gin"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, name string) (catalog.Product, error)
	GetProduct(ctx context.Context, productID string) (catalog.Product, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	TouchProduct(ctx context.Context, productID string) (catalog.Product, error)
	CreateURL(ctx context.Context, productID, url, xpath, cssSelectors string) (catalog.ProductURL, error)
	ListURLs(ctx context.Context, productID string) ([]catalog.ProductURL, error)
	DeleteURL(ctx context.Context, productID, productURLID string) (int, error)
	ListPrices(ctx context.Context, productURLID string) ([]prices.Observation, error)
	AddPrice(ctx context.Context, obs prices.Observation) error
}

type Handler struct {
	service CatalogService
}

func NewHandler(svc CatalogService) *Handler {
	return &Handler{service: svc}
}

type createProductRequest struct {
	ProductName string `json:"productName" binding:"required" example:"Widget"`
}

type createURLRequest struct {
	ProductURL   string `json:"productUrl" binding:"required" example:"https://example.com/widget"`
	XPath        string `json:"xpath"`
	CSSSelectors string `json:"cssSelectors"`
}

type addPriceRequest struct {
	Price               float64 `json:"price" binding:"required"`
	PriceTimestamp      int64   `json:"priceTimestamp" binding:"required"`
	ExpirationTimestamp int64   `json:"expirationTimestamp" binding:"required"`
}

type messageResponse struct {
	Message string `json:"message" example:"product not found"`
}

type productResponse struct {
	Product catalog.Product `json:"product"`
}

type productsResponse struct {
	Products []catalog.Product `json:"products"`
}

type urlResponse struct {
	ProductURL catalog.ProductURL `json:"productUrl"`
}

type urlsResponse struct {
	ProductURLs []catalog.ProductURL `json:"productUrls"`
}

type pricesResponse struct {
	Prices []prices.Observation `json:"prices"`
}

// undeletedPricesHeader reports how many orphaned observations a partial
// cascade left behind.
const undeletedPricesHeader = "X-Undeleted-Prices"

func writeError(c *gin.Context, err error) {
	var partial *cascade.PartialError
	if errors.As(err, &partial) {
		c.Header(undeletedPricesHeader, strconv.Itoa(len(partial.Undeleted)))
		c.JSON(http.StatusInternalServerError, messageResponse{Message: partial.Error()})
		return
	}

	switch catalog.KindOfError(err) {
	case catalog.KindValidation:
		c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case catalog.KindNotFound:
		c.JSON(http.StatusNotFound, messageResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, messageResponse{Message: "internal error"})
	}
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product data"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "missing request body"})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req.ProductName)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, productResponse{Product: product})
}

// ListProducts godoc
// @Summary      List every product
// @Tags         products
// @Produce      json
// @Success      200  {object}  productsResponse
// @Failure      500  {object}  messageResponse
// @Router       /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	list, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, productsResponse{Products: list})
}

// GetProduct godoc
// @Summary      Get one product by id
// @Tags         products
// @Produce      json
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  productResponse
// @Failure      404        {object}  messageResponse
// @Failure      500        {object}  messageResponse
// @Router       /products/{productId} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, productResponse{Product: product})
}

// TouchProduct godoc
// @Summary      Bump a product's updatedAt timestamp
// @Tags         products
// @Produce      json
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  productResponse
// @Failure      404        {object}  messageResponse
// @Failure      500        {object}  messageResponse
// @Router       /products/{productId} [patch]
func (h *Handler) TouchProduct(c *gin.Context) {
	product, err := h.service.TouchProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, productResponse{Product: product})
}

// CreateURL godoc
// @Summary      Register a url to monitor under a product
// @Tags         urls
// @Accept       json
// @Produce      json
// @Param        productId  path      string            true  "Owning product id"
// @Param        body       body      createURLRequest  true  "Url data"
// @Success      200        {object}  urlResponse
// @Failure      400        {object}  messageResponse
// @Failure      500        {object}  messageResponse
// @Router       /products/{productId}/urls [post]
func (h *Handler) CreateURL(c *gin.Context) {
	var req createURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "missing request body"})
		return
	}

	created, err := h.service.CreateURL(c.Request.Context(), c.Param("productId"), req.ProductURL, req.XPath, req.CSSSelectors)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, urlResponse{ProductURL: created})
}

// ListURLs godoc
// @Summary      List the urls monitored for a product
// @Tags         urls
// @Produce      json
// @Param        productId  path      string  true  "Owning product id"
// @Success      200        {object}  urlsResponse
// @Failure      500        {object}  messageResponse
// @Router       /products/{productId}/urls [get]
func (h *Handler) ListURLs(c *gin.Context) {
	list, err := h.service.ListURLs(c.Request.Context(), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, urlsResponse{ProductURLs: list})
}

// DeleteURL godoc
// @Summary      Delete a url and its price history
// @Tags         urls
// @Produce      json
// @Param        productId     path  string  true  "Owning product id"
// @Param        productUrlId  path  string  true  "Url id"
// @Success      204
// @Failure      400  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /products/{productId}/urls/{productUrlId} [delete]
func (h *Handler) DeleteURL(c *gin.Context) {
	_, err := h.service.DeleteURL(c.Request.Context(), c.Param("productId"), c.Param("productUrlId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPrices godoc
// @Summary      List price observations for a url, newest first
// @Tags         prices
// @Produce      json
// @Param        productUrlId  path      string  true  "Url id"
// @Success      200           {object}  pricesResponse
// @Failure      500           {object}  messageResponse
// @Router       /urls/{productUrlId}/prices [get]
func (h *Handler) ListPrices(c *gin.Context) {
	list, err := h.service.ListPrices(c.Request.Context(), c.Param("productUrlId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricesResponse{Prices: list})
}

// AddPrice godoc
// @Summary      Record a scraped price observation
// @Tags         prices
// @Accept       json
// @Produce      json
// @Param        productUrlId  path      string           true  "Url id"
// @Param        body          body      addPriceRequest  true  "Observation"
// @Success      200           {object}  messageResponse
// @Failure      400           {object}  messageResponse
// @Failure      500           {object}  messageResponse
// @Router       /urls/{productUrlId}/prices [post]
func (h *Handler) AddPrice(c *gin.Context) {
	var req addPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "missing request body"})
		return
	}

	obs := prices.Observation{
		ProductURLID: c.Param("productUrlId"),
		Timestamp:    req.PriceTimestamp,
		Price:        req.Price,
		ExpiresAt:    req.ExpirationTimestamp,
	}
	if err := h.service.AddPrice(c.Request.Context(), obs); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "price recorded"})
}
