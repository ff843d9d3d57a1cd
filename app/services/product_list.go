package services

import (
	"sync"

	"github.com/paoluke/tienda/app/models"
)

// ProductList is the admin's cached copy of the inventory. Workflows only
// touch it after the database write succeeded.
type ProductList struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewProductList(products []models.Product) *ProductList {
	l := &ProductList{}
	l.Reset(products)
	return l
}

func (l *ProductList) Reset(products []models.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.products = append([]models.Product(nil), products...)
}

func (l *ProductList) Snapshot() []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Product(nil), l.products...)
}

func (l *ProductList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.products)
}

func (l *ProductList) Get(id int64) (models.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (l *ProductList) update(id int64, fn func(p *models.Product)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.products {
		if l.products[i].ID == id {
			fn(&l.products[i])
			return
		}
	}
}

func (l *ProductList) remove(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.products[:0]
	for _, p := range l.products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	l.products = out
}

func (l *ProductList) prepend(p models.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.products = append([]models.Product{p}, l.products...)
}
