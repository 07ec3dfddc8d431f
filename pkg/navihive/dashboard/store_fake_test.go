package dashboard

import (
	"context"
	"sort"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/importexport"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
)

// fakeStore is an in-memory Store used to test the engine without a
// server. Order commits mutate its state the way the real backend does;
// failure injection fields simulate rejections and transport errors.
type fakeStore struct {
	groups  []models.Group
	sites   map[uint][]models.Site
	configs map[string]string

	nextID uint

	rejectGroupOrder bool
	rejectSiteOrder  bool
	failGroupOrder   error
	failSiteOrder    error

	importResult importexport.ImportResult
	importErr    error

	groupOrderCalls [][]OrderPair
	siteOrderCalls  [][]OrderPair
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sites:   map[uint][]models.Site{},
		configs: map[string]string{},
		nextID:  1,
	}
}

func (f *fakeStore) addGroup(name string) models.Group {
	group := models.Group{ID: f.nextID, Name: name, OrderNum: len(f.groups)}
	f.nextID++
	f.groups = append(f.groups, group)
	return group
}

func (f *fakeStore) addSite(groupID uint, name, url string) models.Site {
	site := models.Site{
		ID:       f.nextID,
		GroupID:  groupID,
		Name:     name,
		URL:      url,
		OrderNum: len(f.sites[groupID]),
	}
	f.nextID++
	f.sites[groupID] = append(f.sites[groupID], site)
	return site
}

func (f *fakeStore) ListGroups(ctx context.Context) ([]models.Group, error) {
	out := make([]models.Group, len(f.groups))
	copy(out, f.groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderNum < out[j].OrderNum })
	return out, nil
}

func (f *fakeStore) ListSites(ctx context.Context, groupID uint) ([]models.Site, error) {
	stored := f.sites[groupID]
	out := make([]models.Site, len(stored))
	copy(out, stored)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderNum < out[j].OrderNum })
	return out, nil
}

func (f *fakeStore) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	created := f.addGroup(group.Name)
	return created, nil
}

func (f *fakeStore) UpdateGroup(ctx context.Context, id uint, group models.Group) (bool, error) {
	for i := range f.groups {
		if f.groups[i].ID == id {
			f.groups[i].Name = group.Name
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteGroup(ctx context.Context, id uint) (bool, error) {
	for i := range f.groups {
		if f.groups[i].ID == id {
			f.groups = append(f.groups[:i], f.groups[i+1:]...)
			delete(f.sites, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateSite(ctx context.Context, site models.Site) (models.Site, error) {
	created := f.addSite(site.GroupID, site.Name, site.URL)
	return created, nil
}

func (f *fakeStore) UpdateSite(ctx context.Context, id uint, site models.Site) (bool, error) {
	for groupID, stored := range f.sites {
		for i := range stored {
			if stored[i].ID == id {
				f.sites[groupID][i].Name = site.Name
				f.sites[groupID][i].URL = site.URL
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteSite(ctx context.Context, id uint) (bool, error) {
	for groupID, stored := range f.sites {
		for i := range stored {
			if stored[i].ID == id {
				f.sites[groupID] = append(stored[:i], stored[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeStore) SetGroupOrder(ctx context.Context, pairs []OrderPair) (bool, error) {
	f.groupOrderCalls = append(f.groupOrderCalls, pairs)
	if f.failGroupOrder != nil {
		return false, f.failGroupOrder
	}
	if f.rejectGroupOrder {
		return false, nil
	}
	for _, pair := range pairs {
		for i := range f.groups {
			if f.groups[i].ID == pair.ID {
				f.groups[i].OrderNum = pair.OrderNum
			}
		}
	}
	return true, nil
}

func (f *fakeStore) SetSiteOrder(ctx context.Context, pairs []OrderPair) (bool, error) {
	f.siteOrderCalls = append(f.siteOrderCalls, pairs)
	if f.failSiteOrder != nil {
		return false, f.failSiteOrder
	}
	if f.rejectSiteOrder {
		return false, nil
	}
	for _, pair := range pairs {
		for groupID, stored := range f.sites {
			for i := range stored {
				if stored[i].ID == pair.ID {
					f.sites[groupID][i].OrderNum = pair.OrderNum
				}
			}
		}
	}
	return true, nil
}

func (f *fakeStore) ImportDataset(ctx context.Context, snapshot importexport.Snapshot) (importexport.ImportResult, error) {
	if f.importErr != nil {
		return importexport.ImportResult{}, f.importErr
	}
	return f.importResult, nil
}

func (f *fakeStore) ListConfigs(ctx context.Context) ([]models.Config, error) {
	keys := make([]string, 0, len(f.configs))
	for key := range f.configs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]models.Config, len(keys))
	for i, key := range keys {
		entries[i] = models.Config{Key: key, Value: f.configs[key]}
	}
	return entries, nil
}

func (f *fakeStore) GetConfig(ctx context.Context, key string) (string, error) {
	value, ok := f.configs[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *fakeStore) SetConfig(ctx context.Context, key, value string) (bool, error) {
	f.configs[key] = value
	return true, nil
}

var _ Store = (*fakeStore)(nil)
