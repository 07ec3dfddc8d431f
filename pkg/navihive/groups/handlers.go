package groups

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
)

// Handler handles group-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateGroupRequest represents the request to update a group
type UpdateGroupRequest struct {
	Name string `json:"name" binding:"required"`
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

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	OrderNum int    `json:"order_num"`
}

func groupToResponse(group models.Group) GroupResponse {
	return GroupResponse{
		ID:       group.ID,
		Name:     group.Name,
		OrderNum: group.OrderNum,
	}
}

// List returns all groups ordered by order_num
// @Summary List groups
// @Description Get all dashboard groups ordered by their position
// @Tags groups
// @Produce json
// @Success 200 {array} GroupResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *Handler) List(c *gin.Context) {
	var groups []models.Group
	if err := h.db.Order("order_num, id").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	responses := make([]GroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = groupToResponse(group)
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a new group at the end of the current order
// @Summary Create a group
// @Description Create a new group; it is appended after all existing groups
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} GroupResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /groups [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Append after the current last group
	var maxOrder int
	h.db.Model(&models.Group{}).Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)

	group := models.Group{
		Name:     req.Name,
		OrderNum: maxOrder + 1,
	}
	if err := h.db.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, groupToResponse(group))
}

// Update renames a group
// @Summary Update a group
// @Description Update an existing group's name
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body UpdateGroupRequest true "Updated group details"
// @Success 200 {object} GroupResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [put]
func (h *Handler) Update(c *gin.Context) {
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

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group.Name = req.Name
	if err := h.db.Save(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		return
	}

	c.JSON(http.StatusOK, groupToResponse(group))
}

// Delete deletes a group and all its sites
// @Summary Delete a group
// @Description Delete a group; all sites belonging to it are removed as well
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Group deleted"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
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

	// Cascade: sites never outlive their group
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.Site{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

// SetOrder applies a batched order commit to groups
// @Summary Set group order
// @Description Apply a batch of (id, order_num) assignments in one transaction
// @Tags groups
// @Accept json
// @Produce json
// @Param request body SetOrderRequest true "Order assignments"
// @Success 200 {object} map[string]bool "ok"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Unknown group in batch"
// @Security BearerAuth
// @Router /groups/order [put]
func (h *Handler) SetOrder(c *gin.Context) {
	var req SetOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, pair := range req.Orders {
			result := tx.Model(&models.Group{}).Where("id = ?", pair.ID).
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
		c.JSON(http.StatusConflict, gin.H{"error": "Group in batch no longer exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set group order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RegisterRoutes registers group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/groups", h.List)
	rg.POST("/groups", h.Create)
	rg.PUT("/groups/order", h.SetOrder)
	rg.PUT("/groups/:id", h.Update)
	rg.DELETE("/groups/:id", h.Delete)
}
