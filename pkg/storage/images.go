package storage

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/siddhant14g/Real-shop/pkg/apperr"
)

// Image upload folders.
const (
	ProductFolder       = "uploads/products"
	BillFolder          = "uploads/bills"
	AdvertisementFolder = "uploads/advertisements"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// SaveImage validates and stores an uploaded image on the given disk and
// returns its canonical public URL, the one and only URL contract upload
// consumers rely on.
//
// Accepted formats: jpeg, jpg, png, webp. Both the filename extension and
// the sniffed content type must agree.
func SaveImage(disk Disk, folder, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(originalName))
	if !allowedImageExts[ext] {
		return "", apperr.Validation("Only image files (jpeg, jpg, png, webp) are allowed")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperr.Upstream("Image upload failed", err)
	}
	if len(data) == 0 {
		return "", apperr.Validation("Image file is empty")
	}

	if mime := http.DetectContentType(data); !allowedImageMimes[mime] {
		return "", apperr.Validation("Only image files (jpeg, jpg, png, webp) are allowed")
	}

	key := path.Join(folder, randomName()+ext)
	if err := disk.Put(key, data); err != nil {
		return "", apperr.Upstream("Image upload failed", err)
	}

	return disk.URL(key), nil
}

func randomName() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
