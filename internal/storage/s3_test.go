package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	// Images within the cap
	assert.NoError(t, ValidateUpload(FileKindAvatar, "image/jpeg", 1<<20))
	assert.NoError(t, ValidateUpload(FileKindGymLogo, "image/png", MaxImageSize))
	assert.NoError(t, ValidateUpload(FileKindPostMedia, "image/webp", 5<<20))

	// Oversized image
	assert.Error(t, ValidateUpload(FileKindAvatar, "image/jpeg", MaxImageSize+1))

	// Non-image where an image is required
	assert.Error(t, ValidateUpload(FileKindAvatar, "application/pdf", 100))
	assert.Error(t, ValidateUpload(FileKindGymLogo, "video/mp4", 100))

	// Videos
	assert.NoError(t, ValidateUpload(FileKindVideo, "video/mp4", MaxVideoSize))
	assert.Error(t, ValidateUpload(FileKindVideo, "video/mp4", MaxVideoSize+1))
	assert.Error(t, ValidateUpload(FileKindVideo, "image/jpeg", 100))

	// Post media accepts clips under the video cap
	assert.NoError(t, ValidateUpload(FileKindPostMedia, "video/mp4", 50<<20))

	// Unknown kind
	assert.Error(t, ValidateUpload(FileKind("documents"), "image/png", 100))
}

func TestPublicURL(t *testing.T) {
	u := &S3Uploader{baseURL: "https://cdn.ringconnect.app/"}
	assert.Equal(t, "https://cdn.ringconnect.app/avatars/u1/f.jpg", u.PublicURL("avatars/u1/f.jpg"))

	u = &S3Uploader{baseURL: "https://cdn.ringconnect.app"}
	assert.Equal(t, "https://cdn.ringconnect.app/avatars/u1/f.jpg", u.PublicURL("avatars/u1/f.jpg"))
}
