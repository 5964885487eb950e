package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/api"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

type attributeListBody struct {
	Attributes []types.AttributeID `json:"attributes"`
}

type parentBody struct {
	ParentID *types.CategoryID `json:"parent_id"`
}

// categoryID reads the :id path parameter. It writes the 400 response and
// returns false when the id is malformed.
func categoryID(c *gin.Context) (types.CategoryID, bool) {
	id, err := types.ParseCategoryID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return "", false
	}
	return id, true
}

func (h *Handler) listCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.CategoriesResponse{Categories: list})
}

func (h *Handler) createCategory(c *gin.Context) {
	var in catalog.CreateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.catalog.CreateCategory(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	cat, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) moveCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	var body parentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.catalog.MoveCategory(c.Request.Context(), id, body.ParentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) effectiveAttributes(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	set, err := h.catalog.ResolveEffectiveAttributes(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.AttributesResponse{Attributes: set})
}

func (h *Handler) replaceCategoryAttributes(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	var body attributeListBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	ids, err := h.catalog.ReplaceCategoryAttributes(c.Request.Context(), id, body.Attributes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.AttributesResponse{Attributes: ids})
}

func (h *Handler) categoryGroupTree(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	groups, err := h.catalog.BuildAttributeGroupTree(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.GroupTreeResponse{Groups: groups})
}

func (h *Handler) categoryPage(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	view, err := h.catalog.CategoryPage(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
