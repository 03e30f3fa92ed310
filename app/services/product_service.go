package services

import (
	"context"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/cache"
	"github.com/siddhant14g/Real-shop/pkg/logger"
	"github.com/siddhant14g/Real-shop/pkg/storage"
)

const (
	catalogCacheKey = "catalog:all"
	catalogCacheTTL = 5 * time.Minute
)

// ProductStore is the persistence surface ProductService needs.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, name string) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ImageSaver stores an uploaded image and returns its canonical URL.
type ImageSaver func(folder, originalName string, r io.Reader) (string, error)

type ProductService struct {
	products ProductStore
	saveImg  ImageSaver
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{
		products: products,
		saveImg: func(folder, name string, r io.Reader) (string, error) {
			return storage.SaveImage(storage.Default(), folder, name, r)
		},
	}
}

// WithImageSaver overrides image storage, used by tests.
func (s *ProductService) WithImageSaver(fn ImageSaver) *ProductService {
	s.saveImg = fn
	return s
}

// CreateProductInput is the payload for adding a product.
type CreateProductInput struct {
	Name        string `validate:"required,min=2,max=200"`
	Description string `validate:"nullable,max=2000"`
}

// Create stores the image, then the product. New products start available.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput, createdBy primitive.ObjectID, imageName string, image io.Reader) (*models.Product, error) {
	if image == nil {
		return nil, apperr.Validation("Product image is required")
	}

	url, err := s.saveImg(storage.ProductFolder, imageName, image)
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    url,
		Available:   true,
		CreatedBy:   createdBy,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.bustCatalogCache(ctx)
	logger.WithCtx(ctx).Info("product created", "product", p.ID.Hex(), "name", p.Name)
	return p, nil
}

// List returns the full catalog newest-first, served from cache when warm.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(catalogCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cache.Set(catalogCacheKey, products, catalogCacheTTL)
	return products, nil
}

// Search matches product names case-insensitively. Blank returns everything.
func (s *ProductService) Search(ctx context.Context, name string) ([]models.Product, error) {
	return s.products.Search(ctx, name)
}

// ToggleAvailability flips the flag in place and returns the new state.
// Two calls restore the original value.
func (s *ProductService) ToggleAvailability(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.products.SetAvailability(ctx, id, !p.Available)
	if err != nil {
		return nil, err
	}
	s.bustCatalogCache(ctx)
	return updated, nil
}

// Delete removes a product permanently. Existing orders keep their dangling
// reference and render it as a placeholder.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.bustCatalogCache(ctx)
	return nil
}

func (s *ProductService) bustCatalogCache(ctx context.Context) {
	if err := cache.Del(catalogCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("catalog cache invalidation failed", "error", err)
	}
}
