package configs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
)

// Handler handles config key/value requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new configs handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// SetConfigRequest represents the request to set a config value
type SetConfigRequest struct {
	Value string `json:"value"`
}

// ConfigResponse represents a config entry in API responses
type ConfigResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// List returns all config entries
// @Summary List configs
// @Description Get all stored config key/value pairs
// @Tags configs
// @Produce json
// @Success 200 {array} ConfigResponse
// @Security BearerAuth
// @Router /configs [get]
func (h *Handler) List(c *gin.Context) {
	var entries []models.Config
	if err := h.db.Order("key").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch configs"})
		return
	}

	responses := make([]ConfigResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ConfigResponse{Key: entry.Key, Value: entry.Value}
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns a single config value
// @Summary Get a config value
// @Description Get the value stored under a config key
// @Tags configs
// @Produce json
// @Param key path string true "Config key"
// @Success 200 {object} ConfigResponse
// @Failure 404 {object} map[string]string "Config not found"
// @Security BearerAuth
// @Router /configs/{key} [get]
func (h *Handler) Get(c *gin.Context) {
	key := c.Param("key")

	var entry models.Config
	if err := h.db.Where("key = ?", key).First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Config not found"})
		return
	}

	c.JSON(http.StatusOK, ConfigResponse{Key: entry.Key, Value: entry.Value})
}

// Set creates or overwrites a config value
// @Summary Set a config value
// @Description Store a value under a config key, overwriting any existing value
// @Tags configs
// @Accept json
// @Produce json
// @Param key path string true "Config key"
// @Param request body SetConfigRequest true "Config value"
// @Success 200 {object} map[string]bool "ok"
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /configs/{key} [put]
func (h *Handler) Set(c *gin.Context) {
	key := c.Param("key")

	var req SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.Config{Key: key, Value: req.Value}
	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set config"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RegisterRoutes registers config routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/configs", h.List)
	rg.GET("/configs/:key", h.Get)
	rg.PUT("/configs/:key", h.Set)
}
