package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Companies
// ──────────────────────────────────────────────────────────────────────────────

type CompanyRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.Company
}

func NewCompanyRepo() *CompanyRepo { return &CompanyRepo{byID: make(map[string]entity.Company)} }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.TaxID == c.TaxID {
			return domain.ErrDuplicate
		}
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.byID {
		if c.TaxID == taxID {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────────────────────────────────

type ClientRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.Client
}

func NewClientRepo() *ClientRepo { return &ClientRepo{byID: make(map[string]entity.Client)} }

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.TaxID != "" {
		for _, other := range r.byID {
			if other.CompanyID == c.CompanyID && other.TaxID == c.TaxID {
				return domain.ErrDuplicate
			}
		}
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.byID {
		if c.CompanyID == companyID && c.TaxID == taxID {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) ListByCompany(_ context.Context, companyID, search string, limit, offset int) ([]*entity.Client, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	r.mu.RLock()
	var list []*entity.Client
	for _, c := range r.byID {
		if c.CompanyID != companyID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		c := c
		list = append(list, &c)
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Products y tamaños
// ──────────────────────────────────────────────────────────────────────────────

type ProductRepo struct {
	mu   sync.RWMutex
	byID map[string]*entity.Product
}

func NewProductRepo() *ProductRepo { return &ProductRepo{byID: make(map[string]*entity.Product)} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.CompanyID == p.CompanyID && other.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.byID[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.byID {
		if p.CompanyID == companyID && p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneProduct(p)
	next.Sizes = stored.Sizes
	r.byID[p.ID] = next
	return nil
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	r.mu.RLock()
	var list []*entity.Product
	for _, p := range r.byID {
		if p.CompanyID == companyID {
			c := cloneProduct(p)
			c.Sizes = nil
			list = append(list, c)
		}
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *ProductRepo) CreateSize(_ context.Context, s *entity.Size) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[s.ProductID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range p.Sizes {
		if strings.EqualFold(other.Label, s.Label) {
			return domain.ErrDuplicate
		}
	}
	size := *s
	p.Sizes = append(p.Sizes, &size)
	return nil
}

func (r *ProductRepo) DeleteSize(_ context.Context, productID, sizeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, s := range p.Sizes {
		if s.ID == sizeID {
			p.Sizes = append(p.Sizes[:i:i], p.Sizes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Sizes = make([]*entity.Size, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		size := *s
		c.Sizes = append(c.Sizes, &size)
	}
	return &c
}

// ──────────────────────────────────────────────────────────────────────────────
// Settings
// ──────────────────────────────────────────────────────────────────────────────

type SettingsRepo struct {
	mu        sync.RWMutex
	byCompany map[string]entity.Settings
}

func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{byCompany: make(map[string]entity.Settings)}
}

func (r *SettingsRepo) Get(_ context.Context, companyID string) (*entity.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byCompany[companyID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SettingsRepo) Upsert(_ context.Context, s *entity.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCompany[s.CompanyID] = *s
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.User
}

func NewUserRepo() *UserRepo { return &UserRepo{byID: make(map[string]entity.User)} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if strings.EqualFold(other.Email, u.Email) && other.CompanyID == u.CompanyID {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) && u.CompanyID == companyID {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	var list []*entity.User
	for _, u := range r.byID {
		if u.CompanyID == companyID {
			u := u
			list = append(list, &u)
		}
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return page(list, limit, offset), nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
