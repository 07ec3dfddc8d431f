package dashboard

import "github.com/Cooldy-Wong/Navihive/pkg/navihive/models"

// moveElement removes the element at from and reinserts it at to,
// shifting the elements between them. Indices must already be validated.
func moveElement[E any](list []E, from, to int) {
	if from == to {
		return
	}
	elem := list[from]
	if from < to {
		copy(list[from:], list[from+1:to+1])
	} else {
		copy(list[to+1:], list[to:from])
	}
	list[to] = elem
}

// Move rearranges the active staging buffer: the element at from is
// reinserted at to. Equal indices are a no-op. This is the sole mutation
// drag gestures drive; the buffer never contacts storage.
func (c *Controller) Move(from, to int) error {
	var length int
	switch c.session.kind {
	case GroupSort:
		length = len(c.session.groups)
	case SiteSort:
		length = len(c.session.sites)
	default:
		return ErrNoSession
	}

	if from < 0 || from >= length || to < 0 || to >= length {
		return ErrBadIndex
	}

	switch c.session.kind {
	case GroupSort:
		moveElement(c.session.groups, from, to)
	case SiteSort:
		moveElement(c.session.sites, from, to)
	}
	return nil
}

// StagingGroups returns the group staging buffer, or nil when no group
// sort session is open. Callers render it read-only.
func (c *Controller) StagingGroups() []models.Group {
	if c.session.kind != GroupSort {
		return nil
	}
	return c.session.groups
}

// StagingSites returns the site staging buffer, or nil when no site sort
// session is open. Callers render it read-only.
func (c *Controller) StagingSites() []models.Site {
	if c.session.kind != SiteSort {
		return nil
	}
	return c.session.sites
}
