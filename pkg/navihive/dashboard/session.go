package dashboard

import "github.com/Cooldy-Wong/Navihive/pkg/navihive/models"

// SessionKind identifies which sort session, if any, is open.
type SessionKind int

const (
	Idle SessionKind = iota
	GroupSort
	SiteSort
)

func (k SessionKind) String() string {
	switch k {
	case GroupSort:
		return "group-sort"
	case SiteSort:
		return "site-sort"
	default:
		return "idle"
	}
}

// session is the tagged variant tracking the active sort session and its
// staging buffer. Only the fields of the live variant are populated:
// groups for GroupSort, groupID and sites for SiteSort, nothing for Idle.
type session struct {
	kind    SessionKind
	groupID uint
	groups  []models.Group
	sites   []models.Site
}

// StartGroupSort opens a group sort session, seeding the staging buffer
// with a snapshot copy of the current group order.
func (c *Controller) StartGroupSort() error {
	if c.session.kind != Idle {
		return ErrSessionActive
	}

	buffer := make([]models.Group, len(c.groups))
	copy(buffer, c.groups)
	c.session = session{kind: GroupSort, groups: buffer}
	return nil
}

// StartSiteSort opens a site sort session for one group, seeding the
// staging buffer with a snapshot copy of that group's site order.
// Returns ErrTooFewSites (and stays Idle) when the group has fewer than
// two sites, since reordering one item is meaningless.
func (c *Controller) StartSiteSort(groupID uint) error {
	if c.session.kind != Idle {
		return ErrSessionActive
	}

	group := c.findGroup(groupID)
	if group == nil {
		return ErrNotFound
	}
	if len(group.Sites) < 2 {
		return ErrTooFewSites
	}

	buffer := make([]models.Site, len(group.Sites))
	copy(buffer, group.Sites)
	c.session = session{kind: SiteSort, groupID: groupID, sites: buffer}
	return nil
}

// Cancel discards the staging buffer unconditionally and returns to Idle.
// The entity store is untouched.
func (c *Controller) Cancel() error {
	if c.session.kind == Idle {
		return ErrNoSession
	}
	c.session = session{}
	return nil
}

// State returns the kind of the open session and, for SiteSort, the group
// being sorted.
func (c *Controller) State() (SessionKind, uint) {
	return c.session.kind, c.session.groupID
}
