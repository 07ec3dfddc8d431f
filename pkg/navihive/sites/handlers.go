package sites

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
)

// Handler handles site-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new sites handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateSiteRequest represents the request to create a site
type CreateSiteRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

// UpdateSiteRequest represents the request to update a site
type UpdateSiteRequest struct {
	Name        string  `json:"name"`
	URL         string  `json:"url" binding:"omitempty,url"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	GroupID     *uint   `json:"group_id"`
}

// OrderPair is one (id, order_num) assignment in a batched order commit
type OrderPair struct {
	ID       uint `json:"id" binding:"required"`
	OrderNum *int `json:"order_num" binding:"required"`
}

// SetOrderRequest represents a batched order commit
type SetOrderRequest struct {
	Orders []OrderPair `json:"orders" binding:"required"`
}

// SiteResponse represents a site in API responses
type SiteResponse struct {
	ID          uint   `json:"id"`
	GroupID     uint   `json:"group_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	OrderNum    int    `json:"order_num"`
}

func siteToResponse(site models.Site) SiteResponse {
	return SiteResponse{
		ID:          site.ID,
		GroupID:     site.GroupID,
		Name:        site.Name,
		URL:         site.URL,
		Icon:        site.Icon,
		Description: site.Description,
		Notes:       site.Notes,
		OrderNum:    site.OrderNum,
	}
}

// ListByGroup returns all sites in a group ordered by order_num
// @Summary List sites in a group
// @Description Get all sites belonging to a group, ordered by their position
// @Tags sites
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} SiteResponse
// @Failure 400 {object} map[string]string "Invalid group ID"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/sites [get]
func (h *Handler) ListByGroup(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var sites []models.Site
	if err := h.db.Where("group_id = ?", groupID).Order("order_num, id").Find(&sites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sites"})
		return
	}

	responses := make([]SiteResponse, len(sites))
	for i, site := range sites {
		responses[i] = siteToResponse(site)
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a new site in a group at the end of the current order
// @Summary Create a site
// @Description Create a new site in a group; it is appended after the group's existing sites
// @Tags sites
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body CreateSiteRequest true "Site details"
// @Success 201 {object} SiteResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/sites [post]
func (h *Handler) Create(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var req CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Append after the group's current last site
	var maxOrder int
	h.db.Model(&models.Site{}).Where("group_id = ?", groupID).
		Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)

	site := models.Site{
		GroupID:     uint(groupID),
		Name:        req.Name,
		URL:         req.URL,
		Icon:        req.Icon,
		Description: req.Description,
		Notes:       req.Notes,
		OrderNum:    maxOrder + 1,
	}
	if err := h.db.Create(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create site"})
		return
	}

	c.JSON(http.StatusCreated, siteToResponse(site))
}

// Update updates a site
// @Summary Update a site
// @Description Update an existing site; moving it to another group appends it there
// @Tags sites
// @Accept json
// @Produce json
// @Param id path int true "Site ID"
// @Param request body UpdateSiteRequest true "Updated site details"
// @Success 200 {object} SiteResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Site not found"
// @Security BearerAuth
// @Router /sites/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	siteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID"})
		return
	}

	var site models.Site
	if err := h.db.First(&site, siteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	var req UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		site.Name = req.Name
	}
	if req.URL != "" {
		site.URL = req.URL
	}
	if req.Icon != nil {
		site.Icon = *req.Icon
	}
	if req.Description != nil {
		site.Description = *req.Description
	}
	if req.Notes != nil {
		site.Notes = *req.Notes
	}
	if req.GroupID != nil && *req.GroupID != site.GroupID {
		var target models.Group
		if err := h.db.First(&target, *req.GroupID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Target group not found"})
			return
		}
		var maxOrder int
		h.db.Model(&models.Site{}).Where("group_id = ?", target.ID).
			Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)
		site.GroupID = target.ID
		site.OrderNum = maxOrder + 1
	}

	if err := h.db.Save(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site"})
		return
	}

	c.JSON(http.StatusOK, siteToResponse(site))
}

// Delete deletes a site
// @Summary Delete a site
// @Description Delete a site by ID
// @Tags sites
// @Produce json
// @Param id path int true "Site ID"
// @Success 200 {object} map[string]string "Site deleted"
// @Failure 404 {object} map[string]string "Site not found"
// @Security BearerAuth
// @Router /sites/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	siteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID"})
		return
	}

	var site models.Site
	if err := h.db.First(&site, siteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	if err := h.db.Delete(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete site"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Site deleted"})
}

// SetOrder applies a batched order commit to sites
// @Summary Set site order
// @Description Apply a batch of (id, order_num) assignments in one transaction
// @Tags sites
// @Accept json
// @Produce json
// @Param request body SetOrderRequest true "Order assignments"
// @Success 200 {object} map[string]bool "ok"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Unknown site in batch"
// @Security BearerAuth
// @Router /sites/order [put]
func (h *Handler) SetOrder(c *gin.Context) {
	var req SetOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, pair := range req.Orders {
			result := tx.Model(&models.Site{}).Where("id = ?", pair.ID).
				Update("order_num", *pair.OrderNum)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusConflict, gin.H{"error": "Site in batch no longer exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set site order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RegisterRoutes registers site routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/groups/:id/sites", h.ListByGroup)
	rg.POST("/groups/:id/sites", h.Create)
	rg.PUT("/sites/order", h.SetOrder)
	rg.PUT("/sites/:id", h.Update)
	rg.DELETE("/sites/:id", h.Delete)
}
