package usecase

import (
	"bytes"
	"context"
	"io"

	"thgamestore/pkg/errors"
)

const (
	GameImageFolder  = "games"
	MaxImageUploadMB = 10
)

type MediaUseCase struct {
	processor ImageProcessor
	store     ImageStore
}

func NewMediaUseCase(processor ImageProcessor, store ImageStore) *MediaUseCase {
	return &MediaUseCase{
		processor: processor,
		store:     store,
	}
}

type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadGameImage resizes the image for the storefront and publishes it.
func (uc *MediaUseCase) UploadGameImage(ctx context.Context, r io.Reader) (*UploadedImage, error) {
	jpeg, err := uc.processor.FitJPEG(io.LimitReader(r, MaxImageUploadMB<<20))
	if err != nil {
		return nil, errors.Validation("Invalid image file")
	}

	url, objectName, err := uc.store.Upload(ctx, bytes.NewReader(jpeg), "image/jpeg", GameImageFolder)
	if err != nil {
		return nil, errors.Internal("Upload failed", err)
	}
	return &UploadedImage{URL: url, PublicID: objectName}, nil
}
