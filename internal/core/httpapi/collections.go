package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/api"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

func collectionID(c *gin.Context) (types.CollectionID, bool) {
	id, err := types.ParseCollectionID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return "", false
	}
	return id, true
}

// limitParam reads ?limit=. Absent means zero, which the service replaces
// with its configured item limit.
func limitParam(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		badRequest(c, fmt.Errorf("%w: limit %q", types.ErrInvalidInput, raw))
		return 0, false
	}
	return n, true
}

// listCollections returns bare collections, or each collection with its
// current products when ?with_products=true.
func (h *Handler) listCollections(c *gin.Context) {
	if c.Query("with_products") == "true" {
		list, err := h.collections.ListCollectionsWithProducts(c.Request.Context())
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, api.CollectionsWithProductsResponse{Collections: list})
		return
	}
	list, err := h.collections.ListCollections(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.CollectionsResponse{Collections: list})
}

func (h *Handler) createCollection(c *gin.Context) {
	var in collection.CollectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.collections.CreateCollection(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getCollection(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	coll, err := h.collections.GetCollection(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, coll)
}

func (h *Handler) updateCollection(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	var in collection.CollectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	coll, err := h.collections.UpdateCollection(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, coll)
}

func (h *Handler) deleteCollection(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	if err := h.collections.DeleteCollection(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) collectionProducts(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	res, err := h.collections.CollectionProducts(c.Request.Context(), id, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ProductsResponse{Items: res.Items, Count: res.Count})
}

func (h *Handler) previewRules(c *gin.Context) {
	var req api.PreviewRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.collections.PreviewRules(c.Request.Context(), req.Rules, req.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ProductsResponse{Items: res.Items, Count: res.Count, Skipped: res.Skipped})
}

func (h *Handler) createProduct(c *gin.Context) {
	var in collection.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.collections.CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}
