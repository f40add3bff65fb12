package availability

import "barkeep/internal/model"

// Snapshot is a read-only, indexed view of one workspace's categories and
// products. Build it with NewSnapshot and never mutate it afterwards.
type Snapshot struct {
	workspaceID int64
	categories  map[int64]model.Category
	products    map[int64]model.Product
	// children lists category ids by parent category id.
	children map[int64][]int64
	// stocked counts products with positive stock by category id.
	stocked  map[int64]int
	excluded int
}

// NewSnapshot indexes categories and products for workspaceID. Products that
// belong to another workspace are left out of every index.
func NewSnapshot(workspaceID int64, categories []model.Category, products []model.Product) *Snapshot {
	s := &Snapshot{
		workspaceID: workspaceID,
		categories:  make(map[int64]model.Category, len(categories)),
		products:    make(map[int64]model.Product, len(products)),
		children:    make(map[int64][]int64),
		stocked:     make(map[int64]int),
	}

	for _, c := range categories {
		s.categories[c.ID] = c
		if c.ParentID != nil {
			s.children[*c.ParentID] = append(s.children[*c.ParentID], c.ID)
		}
	}

	for _, p := range products {
		if p.WorkspaceID != workspaceID {
			s.excluded++
			continue
		}
		s.products[p.ID] = p
		if p.InStock() {
			s.stocked[p.CategoryID]++
		}
	}

	return s
}

// NewSnapshotFromCatalog builds a Snapshot from a catalog read.
func NewSnapshotFromCatalog(catalog *model.WorkspaceCatalog) *Snapshot {
	return NewSnapshot(catalog.WorkspaceID, catalog.Categories, catalog.Products)
}

// WorkspaceID returns the workspace the snapshot was built for.
func (s *Snapshot) WorkspaceID() int64 {
	return s.workspaceID
}

// Category looks up a category by id.
func (s *Snapshot) Category(id int64) (model.Category, bool) {
	c, ok := s.categories[id]
	return c, ok
}

// Product looks up a product of the snapshot's workspace by id.
func (s *Snapshot) Product(id int64) (model.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// HasStockInCategory reports whether any product tagged exactly with
// categoryID has positive stock.
func (s *Snapshot) HasStockInCategory(categoryID int64) bool {
	return s.stocked[categoryID] > 0
}

// ProductCount returns the number of indexed products.
func (s *Snapshot) ProductCount() int {
	return len(s.products)
}

// CategoryCount returns the number of indexed categories.
func (s *Snapshot) CategoryCount() int {
	return len(s.categories)
}

// ExcludedProducts returns how many products were dropped for belonging to
// another workspace.
func (s *Snapshot) ExcludedProducts() int {
	return s.excluded
}

// family returns c, its parent and every child of its parent. Categories
// outside the family are never interchangeable with c.
func (s *Snapshot) family(c model.Category) []model.Category {
	if c.ParentID == nil {
		return []model.Category{c}
	}

	parentID := *c.ParentID
	siblings := s.children[parentID]
	members := make([]model.Category, 0, len(siblings)+1)
	if parent, ok := s.categories[parentID]; ok {
		members = append(members, parent)
	}
	for _, id := range siblings {
		members = append(members, s.categories[id])
	}
	return members
}
