package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	"foodgram/internal/domain"
)

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, prefix string, img *Image) (string, error)
	Delete(ctx context.Context, url string) error
}

// Image is a decoded upload.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

var ErrInvalidImage = errors.New("invalid base64 image")

// DecodeBase64Image parses a "data:image/<type>;base64,<payload>" URI.
func DecodeBase64Image(dataURI string) (*Image, error) {
	meta, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidImage
	}

	contentType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidImage, contentType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	return &Image{Data: data, ContentType: contentType, Ext: extensionFor(contentType)}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok {
		return "." + sub
	}
	return ""
}

// SaveDataURI decodes dataURI and stores it. Decode failures come back as
// a domain.ValidationError on field.
func SaveDataURI(ctx context.Context, store ImageStore, field, prefix, dataURI string) (string, error) {
	img, err := DecodeBase64Image(dataURI)
	if err != nil {
		return "", domain.NewValidationError(field, err.Error())
	}
	return store.Save(ctx, prefix, img)
}
