package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
)

const productCacheTTL = 15 * time.Minute

type ProductService struct {
	productRepo ports.ProductRepository
	storage     ports.MediaStorage
	logger      ports.LoggerPort
	validate    *validator.Validate
	cache       ports.CachePort
}

func NewProductService(
	productRepo ports.ProductRepository,
	storage ports.MediaStorage,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storage:     storage,
		logger:      logger,
		validate:    validate,
		cache:       cache,
	}
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.validate.Struct(product); err != nil {
		s.logger.Error("Product validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		s.logger.Error("Failed to create product", map[string]interface{}{
			"error": err.Error(),
			"code":  product.Code,
		})
		return nil, err
	}

	s.logger.Info("Product created successfully", map[string]interface{}{
		"product_id": created.ID,
		"code":       created.Code,
	})
	return created, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	cacheKey := productCacheKey(id)
	if cachedData, err := s.cache.Get(cacheKey); err == nil {
		var cached domain.Product
		if err := json.Unmarshal(cachedData, &cached); err == nil {
			s.logger.Debug("Product found in cache", map[string]interface{}{
				"product_id": id,
			})
			return &cached, nil
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get product", map[string]interface{}{
			"error":      err.Error(),
			"product_id": id,
		})
		return nil, err
	}

	productData, err := json.Marshal(product)
	if err != nil {
		s.logger.Warn("Failed to marshal product for cache", map[string]interface{}{
			"error":      err.Error(),
			"product_id": id,
		})
	} else if err := s.cache.Set(cacheKey, productData, productCacheTTL); err != nil {
		s.logger.Warn("Failed to cache product", map[string]interface{}{
			"error":      err.Error(),
			"product_id": id,
		})
	}

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return products, nil
}

// CountProducts backs the catalog page.
func (s *ProductService) CountProducts(ctx context.Context) (int, error) {
	count, err := s.productRepo.CountProducts(ctx)
	if err != nil {
		s.logger.Error("Failed to count products", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, err
	}
	return count, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.validate.Struct(product); err != nil {
		s.logger.Error("Product validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	updated, err := s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		s.logger.Error("Failed to update product", map[string]interface{}{
			"error":      err.Error(),
			"product_id": product.ID,
		})
		return nil, err
	}
	s.invalidate(product.ID)

	s.logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return updated, nil
}

// UpdateCover stores the upload under product_covers/ and replaces the
// product's current cover.
func (s *ProductService) UpdateCover(ctx context.Context, id int64, upload *domain.Upload) (*domain.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := storeUpload(ctx, s.storage, domain.ProductCoversDir, upload)
	if err != nil {
		return nil, err
	}

	previous := product.Cover
	product.Cover = key
	updated, err := s.UpdateProduct(ctx, product)
	if err != nil {
		removeMedia(ctx, s.storage, s.logger, key)
		return nil, err
	}
	removeMedia(ctx, s.storage, s.logger, previous)
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", map[string]interface{}{
			"error":      err.Error(),
			"product_id": id,
		})
		return err
	}
	s.invalidate(id)
	removeMedia(ctx, s.storage, s.logger, product.Cover)

	s.logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *ProductService) invalidate(id int64) {
	if err := s.cache.Delete(productCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate product cache", map[string]interface{}{
			"error":      err.Error(),
			"product_id": id,
		})
	}
}
