package dashboard

import (
	"context"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/importexport"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
)

// OrderPair is one (id, order_num) assignment in a batched order commit.
type OrderPair struct {
	ID       uint `json:"id"`
	OrderNum int  `json:"order_num"`
}

// Store is the persistence collaborator the dashboard engine drives.
// Defined at the consumer per Go convention "accept interfaces, return
// structs"; apiclient provides the HTTP implementation.
//
// The bool-returning operations report a recoverable rejection (target
// gone, batch refused) as false with a nil error, distinct from a hard
// transport error.
type Store interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	ListSites(ctx context.Context, groupID uint) ([]models.Site, error)

	CreateGroup(ctx context.Context, group models.Group) (models.Group, error)
	UpdateGroup(ctx context.Context, id uint, group models.Group) (bool, error)
	DeleteGroup(ctx context.Context, id uint) (bool, error)

	CreateSite(ctx context.Context, site models.Site) (models.Site, error)
	UpdateSite(ctx context.Context, id uint, site models.Site) (bool, error)
	DeleteSite(ctx context.Context, id uint) (bool, error)

	SetGroupOrder(ctx context.Context, pairs []OrderPair) (bool, error)
	SetSiteOrder(ctx context.Context, pairs []OrderPair) (bool, error)

	ImportDataset(ctx context.Context, snapshot importexport.Snapshot) (importexport.ImportResult, error)

	ListConfigs(ctx context.Context) ([]models.Config, error)
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) (bool, error)
}
