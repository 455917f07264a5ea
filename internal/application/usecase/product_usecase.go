package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Cotizaciones-api/internal/application/dto"
	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos y sus tamaños.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con sus tamaños iniciales.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}
	if in.Unit == "" {
		in.Unit = "und"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Unit:        in.Unit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	for _, s := range in.Sizes {
		size, err := uc.addSize(ctx, product.ID, s)
		if err != nil {
			return nil, err
		}
		product.Sizes = append(product.Sizes, size)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa con sus tamaños.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Los precios ya cotizados no cambian: cada línea guarda su precio.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if err := checkPrice(*in.Price); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page = page.Normalize()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  page.Response(0),
	}, nil
}

// Delete elimina un producto de la empresa.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// AddSize agrega un tamaño al producto.
func (uc *ProductUseCase) AddSize(ctx context.Context, companyID, productID string, in dto.CreateSizeRequest) (*dto.SizeResponse, error) {
	if _, err := uc.load(ctx, companyID, productID); err != nil {
		return nil, err
	}
	size, err := uc.addSize(ctx, productID, in)
	if err != nil {
		return nil, err
	}
	return &dto.SizeResponse{ID: size.ID, Label: size.Label, Price: size.Price}, nil
}

// DeleteSize elimina un tamaño del producto.
func (uc *ProductUseCase) DeleteSize(ctx context.Context, companyID, productID, sizeID string) error {
	if _, err := uc.load(ctx, companyID, productID); err != nil {
		return err
	}
	return uc.repo.DeleteSize(ctx, productID, sizeID)
}

func (uc *ProductUseCase) addSize(ctx context.Context, productID string, in dto.CreateSizeRequest) (*entity.Size, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: etiqueta de tamaño requerida", domain.ErrInvalidInput)
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}
	size := &entity.Size{
		ID:        uuid.New().String(),
		ProductID: productID,
		Label:     label,
		Price:     in.Price,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateSize(ctx, size); err != nil {
		return nil, err
	}
	return size, nil
}

func (uc *ProductUseCase) load(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func checkPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, s := range p.Sizes {
		resp.Sizes = append(resp.Sizes, dto.SizeResponse{ID: s.ID, Label: s.Label, Price: s.Price})
	}
	return resp
}
