package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/api"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

func (h *Handler) createUnit(c *gin.Context) {
	var in catalog.CreateUnitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.catalog.CreateUnit(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) listAttributes(c *gin.Context) {
	list, err := h.catalog.ListAttributes(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.AttributeListResponse{Attributes: list})
}

func (h *Handler) createAttribute(c *gin.Context) {
	var in catalog.CreateAttributeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.catalog.CreateAttribute(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) deleteAttribute(c *gin.Context) {
	id, err := types.ParseAttributeID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.catalog.DeleteAttribute(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listAttributeGroups(c *gin.Context) {
	list, err := h.catalog.ListAttributeGroups(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.AttributeGroupsResponse{Groups: list})
}

func (h *Handler) createAttributeGroup(c *gin.Context) {
	var in catalog.CreateAttributeGroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	g, err := h.catalog.CreateAttributeGroup(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// groupTreeForAttributes builds the group tree for an explicit attribute set,
// such as one being edited on a product form before it is saved.
func (h *Handler) groupTreeForAttributes(c *gin.Context) {
	var body attributeListBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	groups, err := h.catalog.BuildGroupTreeForAttributes(c.Request.Context(), body.Attributes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.GroupTreeResponse{Groups: groups})
}

func (h *Handler) replaceGroupAttributes(c *gin.Context) {
	raw := c.Param("id")
	if !types.IsValidID(raw) {
		badRequest(c, fmt.Errorf("%w: attribute group %q", types.ErrInvalidID, raw))
		return
	}
	var body attributeListBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	ids, err := h.catalog.ReplaceGroupAttributes(c.Request.Context(), types.AttributeGroupID(raw), body.Attributes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.AttributesResponse{Attributes: ids})
}
