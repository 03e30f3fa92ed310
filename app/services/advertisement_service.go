package services

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/storage"
)

// AdvertisementStore is the persistence surface AdvertisementService needs.
type AdvertisementStore interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	FindAll(ctx context.Context) ([]models.Advertisement, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AdvertisementService struct {
	ads     AdvertisementStore
	saveImg ImageSaver
}

func NewAdvertisementService(ads AdvertisementStore) *AdvertisementService {
	return &AdvertisementService{
		ads: ads,
		saveImg: func(folder, name string, r io.Reader) (string, error) {
			return storage.SaveImage(storage.Default(), folder, name, r)
		},
	}
}

// WithImageSaver overrides image storage, used by tests.
func (s *AdvertisementService) WithImageSaver(fn ImageSaver) *AdvertisementService {
	s.saveImg = fn
	return s
}

// Create stores the banner image and the advertisement record.
func (s *AdvertisementService) Create(ctx context.Context, caption, imageName string, image io.Reader) (*models.Advertisement, error) {
	if image == nil {
		return nil, apperr.Validation("Advertisement image is required")
	}

	url, err := s.saveImg(storage.AdvertisementFolder, imageName, image)
	if err != nil {
		return nil, err
	}

	ad := &models.Advertisement{ImageURL: url, Caption: caption}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *AdvertisementService) List(ctx context.Context) ([]models.Advertisement, error) {
	return s.ads.FindAll(ctx)
}

func (s *AdvertisementService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.ads.Delete(ctx, id)
}
