package filestorage

import "mime/multipart"

// ImageStore keeps uploaded event images and hands back their public URLs
type ImageStore interface {
	// SaveImage validates and stores an uploaded image under subPath
	SaveImage(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteImage removes an image previously returned by SaveImage. URLs this
	// store did not issue are ignored.
	DeleteImage(fileURL string) error
}
