// Package uploads wraps Cloudinary for post images and avatars. Post image
// batches upload in parallel before the single post insert.
package uploads

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Uploader struct {
	cld *cloudinary.Cloudinary
}

func New(cloudinaryURL string) (*Uploader, error) {
	if cloudinaryURL == "" {
		// Uploads disabled; handlers fall back to caller-provided URLs.
		return &Uploader{}, nil
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration: %w", err)
	}
	return &Uploader{cld: cld}, nil
}

func (u *Uploader) Enabled() bool {
	return u != nil && u.cld != nil
}

// UploadPostImages uploads every image concurrently and returns their URLs
// in input order. One failed upload fails the batch.
func (u *Uploader) UploadPostImages(ctx context.Context, ownerID string, images []io.Reader) ([]string, error) {
	if !u.Enabled() {
		return nil, fmt.Errorf("image uploads are not configured")
	}

	urls := make([]string, len(images))
	errors := make([]error, len(images))

	var wg sync.WaitGroup
	for i, img := range images {
		wg.Add(1)
		go func(i int, img io.Reader) {
			defer wg.Done()
			result, err := u.cld.Upload.Upload(ctx, img, uploader.UploadParams{
				Folder:         "mataro/posts",
				PublicID:       fmt.Sprintf("%s_%d_%d", ownerID, time.Now().UnixMilli(), i),
				Transformation: "c_limit,w_1200,h_1200,q_auto",
			})
			if err != nil {
				errors[i] = err
				return
			}
			urls[i] = result.SecureURL
		}(i, img)
	}
	wg.Wait()

	for _, err := range errors {
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
	}
	return urls, nil
}

func (u *Uploader) UploadAvatar(ctx context.Context, userID string, avatar io.Reader) (string, error) {
	if !u.Enabled() {
		return "", fmt.Errorf("image uploads are not configured")
	}

	result, err := u.cld.Upload.Upload(ctx, avatar, uploader.UploadParams{
		Folder:         "mataro/avatars",
		PublicID:       userID,
		Transformation: "c_limit,w_400,h_400,q_auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return result.SecureURL, nil
}
