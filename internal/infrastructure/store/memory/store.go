// Package memory provides the volatile reference store: a mutex-guarded,
// insertion-ordered generic collection plus the user/role repositories
// built on top of it. Contents are lost on process exit.
package memory

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Update and Delete when no entity has the id.
var ErrNotFound = errors.New("memory: entity not found")

// Identity tells a Collection how to read and assign an entity's id.
type Identity[T any] struct {
	Get func(*T) string
	Set func(*T, string)
}

// Collection is an in-memory store of one entity kind. All operations are
// guarded by a single RWMutex, so no caller ever observes a partial write.
// Entities are cloned on the way in and out; callers can mutate what they
// get back without touching stored state.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
	order []string
	ident Identity[T]
	clone func(*T) *T
}

// NewCollection creates an empty Collection. clone must produce a copy that
// shares no mutable state with its argument.
func NewCollection[T any](ident Identity[T], clone func(*T) *T) *Collection[T] {
	return &Collection[T]{
		items: make(map[string]*T),
		ident: ident,
		clone: clone,
	}
}

// FindByID returns the entity with the given id, or nil when absent.
func (c *Collection[T]) FindByID(id string) *T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return nil
	}
	return c.clone(item)
}

// FindBy returns the first entity, in insertion order, matching pred.
// Returns nil when nothing matches.
func (c *Collection[T]) FindBy(pred func(*T) bool) *T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if item := c.items[id]; pred(item) {
			return c.clone(item)
		}
	}
	return nil
}

// List returns all entities in insertion order.
func (c *Collection[T]) List() []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out
}

// Insert stores a new entity, assigning a fresh uuid when its id is empty,
// and returns the stored entity.
func (c *Collection[T]) Insert(item *T) *T {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := c.clone(item)
	if c.ident.Get(stored) == "" {
		c.ident.Set(stored, uuid.NewString())
	}

	id := c.ident.Get(stored)
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = stored

	return c.clone(stored)
}

// Update replaces the stored entity with the same id.
func (c *Collection[T]) Update(item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.ident.Get(item)
	if _, ok := c.items[id]; !ok {
		return ErrNotFound
	}
	c.items[id] = c.clone(item)
	return nil
}

// Delete removes the entity with the given id.
func (c *Collection[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return ErrNotFound
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
