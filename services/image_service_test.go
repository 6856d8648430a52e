package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buynic/storefront-api/utils"
)

// makeFileHeader builds a real multipart.FileHeader by round-tripping a form
// upload through an HTTP request, the same shape handlers receive.
func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write([]byte(content))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, fileHeader, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("Failed to read form file: %v", err)
	}
	return fileHeader
}

func TestS3ImageService_UploadImage(t *testing.T) {
	mockS3 := NewMockS3Service()
	imageService := &S3ImageService{s3Service: mockS3}

	tests := []struct {
		name            string
		filename        string
		folder          string
		wantContentType string
	}{
		{name: "jpeg into products", filename: "bottle.jpg", folder: ProductImageFolder, wantContentType: "image/jpeg"},
		{name: "png into reviews", filename: "unboxing.PNG", folder: ReviewImageFolder, wantContentType: "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := makeFileHeader(t, tt.filename, "fake image bytes")

			key, err := imageService.UploadImage(tt.folder, fileHeader)
			assert.NoError(t, err)

			// Key is {folder}/{timestamp}_{filename}
			assert.True(t, strings.HasPrefix(key, tt.folder+"/"), "key %q not under folder %q", key, tt.folder)
			assert.True(t, strings.HasSuffix(key, "_"+tt.filename), "key %q does not end with filename", key)

			assert.True(t, mockS3.FileExists(key))
			assert.Equal(t, tt.wantContentType, mockS3.StoredContentType(key))
		})
	}
}

func TestS3ImageService_UploadImage_RejectsInvalidFile(t *testing.T) {
	mockS3 := NewMockS3Service()
	imageService := &S3ImageService{s3Service: mockS3}

	fileHeader := makeFileHeader(t, "invoice.pdf", "not an image")

	key, err := imageService.UploadImage(ProductImageFolder, fileHeader)
	assert.Empty(t, key)

	var uploadErr *utils.FileUploadError
	assert.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "INVALID_FILE_FORMAT", uploadErr.Code)

	// Nothing reached storage
	assert.False(t, mockS3.FileExists("products/invoice.pdf"))
}

func TestS3ImageService_GetImageURL(t *testing.T) {
	mockS3 := NewMockS3Service()
	imageService := &S3ImageService{s3Service: mockS3}

	fileHeader := makeFileHeader(t, "bottle.jpg", "fake image bytes")
	key, err := imageService.UploadImage(ProductImageFolder, fileHeader)
	assert.NoError(t, err)

	url, err := imageService.GetImageURL(key)
	assert.NoError(t, err)
	assert.Contains(t, url, key)

	// Empty key means no image, not an error
	url, err = imageService.GetImageURL("")
	assert.NoError(t, err)
	assert.Empty(t, url)

	// Unknown key surfaces the storage error
	_, err = imageService.GetImageURL("products/999_missing.jpg")
	assert.Error(t, err)
}

func TestS3ImageService_DeleteImage(t *testing.T) {
	mockS3 := NewMockS3Service()
	imageService := &S3ImageService{s3Service: mockS3}

	fileHeader := makeFileHeader(t, "bottle.jpg", "fake image bytes")
	key, err := imageService.UploadImage(ReviewImageFolder, fileHeader)
	assert.NoError(t, err)

	assert.NoError(t, imageService.DeleteImage(key))
	assert.False(t, mockS3.FileExists(key))

	// Empty key is a no-op
	assert.NoError(t, imageService.DeleteImage(""))
}
