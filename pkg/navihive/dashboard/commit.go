package dashboard

import (
	"context"
	"fmt"
)

// Commit converts the staging buffer's final positions into persisted
// order numbers: position in the buffer becomes order_num, 0-based and
// dense, regardless of the values the entities carried before. The batch
// goes to storage in one call, then the entity store is refreshed from
// persisted truth.
//
// The session returns to Idle whether the commit succeeds or fails. On
// failure nothing is refreshed, so the entity store keeps its last-known
// pre-commit order; commit is all-or-nothing from the client's view.
func (c *Controller) Commit(ctx context.Context) error {
	kind := c.session.kind
	if kind == Idle {
		return ErrNoSession
	}

	var pairs []OrderPair
	switch kind {
	case GroupSort:
		pairs = make([]OrderPair, len(c.session.groups))
		for i, group := range c.session.groups {
			pairs[i] = OrderPair{ID: group.ID, OrderNum: i}
		}
	case SiteSort:
		pairs = make([]OrderPair, len(c.session.sites))
		for i, site := range c.session.sites {
			pairs[i] = OrderPair{ID: site.ID, OrderNum: i}
		}
	}

	// Idle before touching storage: failure and success both end the session.
	c.session = session{}

	var ok bool
	var err error
	switch kind {
	case GroupSort:
		ok, err = c.store.SetGroupOrder(ctx, pairs)
	case SiteSort:
		ok, err = c.store.SetSiteOrder(ctx, pairs)
	}
	if err != nil {
		return fmt.Errorf("commit %s: %w", kind, err)
	}
	if !ok {
		return ErrOrderRejected
	}

	return c.Refresh(ctx)
}
