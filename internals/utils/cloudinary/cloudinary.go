package cloudinary

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Credentials reads CLOUDINARY_URL from the environment.
func Credentials() (*cloudinary.Cloudinary, context.Context, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, nil, err
	}
	cld.Config.URL.Secure = true
	ctx := context.Background()
	return cld, ctx, nil
}

// UploadImage uploads a base64 data-URI image and returns its HTTPS URL.
func UploadImage(cld *cloudinary.Cloudinary, ctx context.Context, base64Image string) (string, error) {
	uniquePublicID := "profile_" + strconv.FormatInt(time.Now().Unix(), 10)

	resp, err := cld.Upload.Upload(ctx, base64Image, uploader.UploadParams{
		PublicID:       uniquePublicID,
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return resp.SecureURL, nil
}
