package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddhant14g/Real-shop/pkg/apperr"
)

type fakeDisk struct {
	files map[string][]byte
}

func newFakeDisk() *fakeDisk { return &fakeDisk{files: map[string][]byte{}} }

func (d *fakeDisk) Put(path string, content []byte) error {
	d.files[path] = content
	return nil
}

func (d *fakeDisk) PutStream(path string, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, raw)
}

func (d *fakeDisk) Get(path string) ([]byte, error) { return d.files[path], nil }
func (d *fakeDisk) Exists(path string) bool         { _, ok := d.files[path]; return ok }
func (d *fakeDisk) Delete(path string) error        { delete(d.files, path); return nil }
func (d *fakeDisk) URL(path string) string          { return "https://cdn.test/" + path }

// pngBytes is a minimal valid PNG header so content sniffing passes.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestSaveImageReturnsCanonicalURL(t *testing.T) {
	disk := newFakeDisk()

	url, err := SaveImage(disk, ProductFolder, "shirt.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.test/uploads/products/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Len(t, disk.files, 1)
}

func TestSaveImageRejectsBadExtension(t *testing.T) {
	_, err := SaveImage(newFakeDisk(), ProductFolder, "malware.exe", bytes.NewReader(pngBytes))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSaveImageRejectsMismatchedContent(t *testing.T) {
	// Extension says png, bytes say plain text.
	_, err := SaveImage(newFakeDisk(), ProductFolder, "fake.png", strings.NewReader("hello world"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSaveImageRejectsEmptyFile(t *testing.T) {
	_, err := SaveImage(newFakeDisk(), BillFolder, "bill.jpg", bytes.NewReader(nil))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
