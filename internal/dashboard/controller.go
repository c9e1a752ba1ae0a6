package dashboard

import (
	"context"
	"fmt"
	"net/url"

	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

// Filter selects which fetched projects are shown.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterStarred Filter = "starred"
)

// ParseFilter maps a query value to a Filter; "" means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterStarred:
		return FilterStarred, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Lister fetches an owner's projects, newest first.
type Lister interface {
	List(ctx context.Context, ownerID string) ([]domain.Project, error)
}

// Controller holds the dashboard's project collection for one user.
// The store decides ordering; the controller never re-sorts.
type Controller struct {
	store    Lister
	ownerID  string
	loaded   bool
	projects []domain.Project
	filter   Filter
}

func New(store Lister) *Controller {
	return &Controller{store: store, filter: FilterAll}
}

// Load fetches the owner's projects and replaces the collection.
// On error the previous collection is kept.
func (c *Controller) Load(ctx context.Context, ownerID string) error {
	items, err := c.store.List(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	c.projects = items
	c.ownerID = ownerID
	c.loaded = true
	return nil
}

// Refresh loads only when nothing is loaded yet or the identity changed.
func (c *Controller) Refresh(ctx context.Context, ownerID string) error {
	if c.loaded && c.ownerID == ownerID {
		return nil
	}
	return c.Load(ctx, ownerID)
}

func (c *Controller) SetFilter(f Filter) {
	c.filter = f
}

func (c *Controller) Filter() Filter {
	return c.filter
}

// Projects returns the filtered view. The underlying collection is not modified.
func (c *Controller) Projects() []domain.Project {
	out := make([]domain.Project, 0, len(c.projects))
	for _, p := range c.projects {
		if c.filter == FilterStarred && !p.Starred {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DetailRoute is where to navigate after a successful submission. The detail
// view loads its own record, so the collection is not refetched.
func DetailRoute(projectID string) string {
	return "/app/project/" + url.PathEscape(projectID)
}
