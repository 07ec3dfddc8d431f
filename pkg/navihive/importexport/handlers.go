package importexport

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
)

// Handler handles dataset import/export requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// SnapshotGroup represents a group in a dataset snapshot
type SnapshotGroup struct {
	ID       uint   `json:"id,omitempty"`
	Name     string `json:"name"`
	OrderNum int    `json:"order_num"`
}

// SnapshotSite represents a site in a dataset snapshot
type SnapshotSite struct {
	ID          uint   `json:"id,omitempty"`
	GroupID     uint   `json:"group_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	OrderNum    int    `json:"order_num"`
}

// Snapshot represents a full dataset snapshot for import/export.
// All three sections must be present on import; pointers distinguish a
// missing section from an empty one.
type Snapshot struct {
	Groups  *[]SnapshotGroup   `json:"groups"`
	Sites   *[]SnapshotSite    `json:"sites"`
	Configs *map[string]string `json:"configs"`
}

// GroupStats counts group-level merge decisions
type GroupStats struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Merged  int `json:"merged"`
}

// SiteStats counts site-level merge decisions
type SiteStats struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ImportStats summarizes an import run
type ImportStats struct {
	Groups GroupStats `json:"groups"`
	Sites  SiteStats  `json:"sites"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Stats   *ImportStats `json:"stats,omitempty"`
}

// validateSnapshot checks that all snapshot sections are present.
// Runs before any mutation so a malformed file never partially applies.
func validateSnapshot(snapshot Snapshot) error {
	if snapshot.Groups == nil {
		return fmt.Errorf("import format error: missing 'groups' section")
	}
	if snapshot.Sites == nil {
		return fmt.Errorf("import format error: missing 'sites' section")
	}
	if snapshot.Configs == nil {
		return fmt.Errorf("import format error: missing 'configs' section")
	}
	return nil
}

// reconcile merges a snapshot into the database inside tx and returns the
// merge statistics. The policy is deterministic and idempotent:
//
//   - Groups match existing groups by exact name; on multiple candidates the
//     first in (order_num, id) order wins. A match keeps the existing group's
//     identity and counts as merged; otherwise a new group is created.
//   - Sites match by (url, resolved group); a match is updated in place unless
//     the incoming payload fields are identical, in which case it is skipped.
//     Otherwise a new site is created.
//   - Configs merge additively: imported keys overwrite, absent keys are kept.
//
// Re-running the same snapshot yields merged==total for groups and
// skipped==total for sites.
func reconcile(tx *gorm.DB, snapshot Snapshot) (ImportStats, error) {
	var stats ImportStats
	stats.Groups.Total = len(*snapshot.Groups)
	stats.Sites.Total = len(*snapshot.Sites)

	// Snapshot group id -> reconciled database id, for resolving site owners.
	groupIDMap := make(map[uint]uint)

	for _, in := range *snapshot.Groups {
		if in.Name == "" {
			return stats, fmt.Errorf("import format error: group with empty name")
		}

		var existing models.Group
		err := tx.Where("name = ?", in.Name).Order("order_num, id").First(&existing).Error
		if err == nil {
			stats.Groups.Merged++
			if in.ID != 0 {
				groupIDMap[in.ID] = existing.ID
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return stats, err
		}

		created := models.Group{Name: in.Name, OrderNum: in.OrderNum}
		if err := tx.Create(&created).Error; err != nil {
			return stats, err
		}
		stats.Groups.Created++
		if in.ID != 0 {
			groupIDMap[in.ID] = created.ID
		}
	}

	for i, in := range *snapshot.Sites {
		if in.Name == "" || in.URL == "" {
			return stats, fmt.Errorf("import format error: site %d missing name or url", i)
		}

		// Resolve the owning group: prefer the snapshot's own groups,
		// fall back to an existing group with the raw id.
		groupID, ok := groupIDMap[in.GroupID]
		if !ok {
			var owner models.Group
			if err := tx.First(&owner, in.GroupID).Error; err != nil {
				return stats, fmt.Errorf("import error: site %q references unknown group %d", in.URL, in.GroupID)
			}
			groupID = owner.ID
		}

		var existing models.Site
		err := tx.Where("group_id = ? AND url = ?", groupID, in.URL).
			Order("order_num, id").First(&existing).Error
		if err == nil {
			if existing.Name == in.Name && existing.Icon == in.Icon &&
				existing.Description == in.Description && existing.Notes == in.Notes {
				stats.Sites.Skipped++
				continue
			}
			existing.Name = in.Name
			existing.Icon = in.Icon
			existing.Description = in.Description
			existing.Notes = in.Notes
			if err := tx.Save(&existing).Error; err != nil {
				return stats, err
			}
			stats.Sites.Updated++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return stats, err
		}

		created := models.Site{
			GroupID:     groupID,
			Name:        in.Name,
			URL:         in.URL,
			Icon:        in.Icon,
			Description: in.Description,
			Notes:       in.Notes,
			OrderNum:    in.OrderNum,
		}
		if err := tx.Create(&created).Error; err != nil {
			return stats, err
		}
		stats.Sites.Created++
	}

	for key, value := range *snapshot.Configs {
		entry := models.Config{Key: key, Value: value}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entry).Error
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// Import merges a dataset snapshot into the current data
// @Summary Import a dataset
// @Description Merge a full dataset snapshot; matched groups and sites are merged rather than duplicated
// @Tags importexport
// @Accept json
// @Produce json
// @Param request body Snapshot true "Dataset snapshot"
// @Success 200 {object} ImportResult
// @Failure 400 {object} ImportResult "Malformed snapshot"
// @Security BearerAuth
// @Router /import [post]
func (h *Handler) Import(c *gin.Context) {
	var snapshot Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		c.JSON(http.StatusBadRequest, ImportResult{Success: false, Error: "import format error: invalid JSON"})
		return
	}

	if err := validateSnapshot(snapshot); err != nil {
		c.JSON(http.StatusBadRequest, ImportResult{Success: false, Error: err.Error()})
		return
	}

	var stats ImportStats
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		stats, txErr = reconcile(tx, snapshot)
		return txErr
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ImportResult{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ImportResult{Success: true, Stats: &stats})
}

// Export produces a full dataset snapshot
// @Summary Export the dataset
// @Description Export all groups, sites and configs as a snapshot that Import accepts
// @Tags importexport
// @Produce json
// @Success 200 {object} Snapshot
// @Security BearerAuth
// @Router /export [get]
func (h *Handler) Export(c *gin.Context) {
	var groups []models.Group
	if err := h.db.Order("order_num, id").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	var sites []models.Site
	if err := h.db.Order("group_id, order_num, id").Find(&sites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sites"})
		return
	}

	var entries []models.Config
	if err := h.db.Order("key").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch configs"})
		return
	}

	snapGroups := make([]SnapshotGroup, len(groups))
	for i, group := range groups {
		snapGroups[i] = SnapshotGroup{ID: group.ID, Name: group.Name, OrderNum: group.OrderNum}
	}

	snapSites := make([]SnapshotSite, len(sites))
	for i, site := range sites {
		snapSites[i] = SnapshotSite{
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

	snapConfigs := make(map[string]string, len(entries))
	for _, entry := range entries {
		snapConfigs[entry.Key] = entry.Value
	}

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename=navihive-export.json")
	}

	c.JSON(http.StatusOK, Snapshot{Groups: &snapGroups, Sites: &snapSites, Configs: &snapConfigs})
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import", h.Import)
	rg.GET("/export", h.Export)
}
