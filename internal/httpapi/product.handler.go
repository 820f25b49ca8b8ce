package httpapi

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bazaar-orders/internal/repo"
	"bazaar-orders/internal/service"
)

const maxImageSize = 5 << 20 // 5 MB, same cap for create and update

type ProductHandler struct {
	products  service.ProductService
	uploadDir string
}

func NewProductHandler(products service.ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{products: products, uploadDir: uploadDir}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	priceStr := c.PostForm("pricePerKg")
	if name == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and price required"})
		return
	}
	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and price required"})
		return
	}

	imageURL, err := h.saveImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), name, price, imageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var update repo.ProductUpdate
	if name := c.PostForm("name"); name != "" {
		update.Name = &name
	}
	if priceStr := c.PostForm("pricePerKg"); priceStr != "" {
		price, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
			return
		}
		update.PricePerKg = &price
	}
	update.RemoveImage = c.PostForm("removeImage") == "true"

	imageURL, err := h.saveImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	update.ImageURL = imageURL

	product, err := h.products.UpdateProduct(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// saveImage stores an optional multipart "image" field under the upload dir
// with a random filename and returns its public URL. Returns (nil, nil) when
// the request carries no image.
func (h *ProductHandler) saveImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	if file.Size > maxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}
	if !isImage(file) {
		return nil, fmt.Errorf("only images allowed")
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		return nil, err
	}
	url := "/uploads/" + name
	return &url, nil
}

func isImage(file *multipart.FileHeader) bool {
	return strings.HasPrefix(file.Header.Get("Content-Type"), "image/")
}
