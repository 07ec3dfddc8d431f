package dashboard

import (
	"context"
	"fmt"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
)

// Controller owns the entity store and the single sort session. It is the
// one surface the rendering layer drives; the UI observes Groups, Config
// and State read-only and mutates only through the operations below.
//
// The controller is not safe for concurrent use: it models a
// single-threaded, cooperatively-scheduled UI where storage calls suspend
// the caller but never overlap structural edits.
type Controller struct {
	store Store

	// Entity store: groups ordered by order_num, each carrying its sites
	// in order. Replaced wholesale by Refresh, never patched in place.
	groups  []models.Group
	configs map[string]string

	session session
}

// NewController creates a controller over the given store. Call Refresh
// before rendering.
func NewController(store Store) *Controller {
	return &Controller{
		store:   store,
		configs: map[string]string{},
	}
}

// Refresh rebuilds the entity store and config cache from persisted truth.
// Full replace after every mutation keeps the UI within one round trip of
// storage and sidesteps partial-update bugs.
func (c *Controller) Refresh(ctx context.Context) error {
	groups, err := c.store.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("refresh groups: %w", err)
	}

	for i := range groups {
		sites, err := c.store.ListSites(ctx, groups[i].ID)
		if err != nil {
			return fmt.Errorf("refresh sites for group %d: %w", groups[i].ID, err)
		}
		groups[i].Sites = sites
	}

	entries, err := c.store.ListConfigs(ctx)
	if err != nil {
		return fmt.Errorf("refresh configs: %w", err)
	}
	configs := make(map[string]string, len(entries))
	for _, entry := range entries {
		configs[entry.Key] = entry.Value
	}

	c.groups = groups
	c.configs = configs
	return nil
}

// Groups returns the entity store's current groups with their sites.
// Callers render it read-only.
func (c *Controller) Groups() []models.Group {
	return c.groups
}

// Config returns the cached value for a config key.
func (c *Controller) Config(key string) (string, bool) {
	value, ok := c.configs[key]
	return value, ok
}

func (c *Controller) findGroup(groupID uint) *models.Group {
	for i := range c.groups {
		if c.groups[i].ID == groupID {
			return &c.groups[i]
		}
	}
	return nil
}

// CreateGroup persists a new group and refreshes the entity store.
func (c *Controller) CreateGroup(ctx context.Context, group models.Group) error {
	if _, err := c.store.CreateGroup(ctx, group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return c.Refresh(ctx)
}

// UpdateGroup persists changes to a group and refreshes the entity store.
// A vanished target returns ErrNotFound after refreshing, so the UI
// reconciles with storage either way.
func (c *Controller) UpdateGroup(ctx context.Context, id uint, group models.Group) error {
	ok, err := c.store.UpdateGroup(ctx, id, group)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if !ok {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return ErrNotFound
	}
	return c.Refresh(ctx)
}

// DeleteGroup deletes a group; its sites go with it. Refreshes the entity
// store afterwards.
func (c *Controller) DeleteGroup(ctx context.Context, id uint) error {
	ok, err := c.store.DeleteGroup(ctx, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if !ok {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return ErrNotFound
	}
	return c.Refresh(ctx)
}

// CreateSite persists a new site and refreshes the entity store.
func (c *Controller) CreateSite(ctx context.Context, site models.Site) error {
	if _, err := c.store.CreateSite(ctx, site); err != nil {
		return fmt.Errorf("create site: %w", err)
	}
	return c.Refresh(ctx)
}

// UpdateSite persists changes to a site and refreshes the entity store.
func (c *Controller) UpdateSite(ctx context.Context, id uint, site models.Site) error {
	ok, err := c.store.UpdateSite(ctx, id, site)
	if err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	if !ok {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return ErrNotFound
	}
	return c.Refresh(ctx)
}

// DeleteSite deletes a site and refreshes the entity store.
func (c *Controller) DeleteSite(ctx context.Context, id uint) error {
	ok, err := c.store.DeleteSite(ctx, id)
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	if !ok {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return ErrNotFound
	}
	return c.Refresh(ctx)
}

// SetConfig stores a config value and refreshes the config cache.
func (c *Controller) SetConfig(ctx context.Context, key, value string) error {
	ok, err := c.store.SetConfig(ctx, key, value)
	if err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	if !ok {
		return fmt.Errorf("set config %q rejected by storage", key)
	}
	return c.Refresh(ctx)
}
