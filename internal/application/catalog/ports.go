package catalog

import (
	"context"
)

// ImageStorage abstracts where product images live. Implementations return
// the public URL the storefront serves the image from.
type ImageStorage interface {
	// Upload stores the image under the key and returns its public URL.
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) (string, error)

	// Delete removes the object; deleting a missing key is not an error.
	Delete(ctx context.Context, storageKey string) error

	// Exists reports whether the object is present.
	Exists(ctx context.Context, storageKey string) (bool, error)
}

// IndexSyncer pushes product image changes to the text-search index.
// Calls are fire-and-forget from the caller's perspective.
type IndexSyncer interface {
	IndexImage(ctx context.Context, productID, imagePath string, imageBytes []byte) error
	DeleteImages(ctx context.Context, productID string, imagePaths []string) error
}
