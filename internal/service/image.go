package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/model"
)

// MaxImageSize caps a single recipe image upload (10 MiB)
const MaxImageSize int64 = 10 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageUpload is a recipe image received from a client
type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageService stores recipe images in S3 and points the recipe at them
type ImageService struct {
	uploader  ObjectUploader
	bucket    string
	publicURL func(key string) string
	recipes   IRecipeService
}

// NewImageService creates a new ImageService instance. publicURL maps an
// object key to the URL stored on the recipe.
func NewImageService(uploader ObjectUploader, bucket string, publicURL func(key string) string, recipes IRecipeService) *ImageService {
	return &ImageService{
		uploader:  uploader,
		bucket:    bucket,
		publicURL: publicURL,
		recipes:   recipes,
	}
}

// UploadRecipeImage uploads the image and sets it as the recipe's imageUrl
func (s *ImageService) UploadRecipeImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*model.Recipe, error) {
	ext, err := extensionFor(upload.ContentType)
	if err != nil {
		return nil, err
	}

	// Fail before the upload so unknown recipes leave no orphaned objects
	if _, err := s.recipes.GetRecipe(ctx, id); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recipes/%s/%s%s", id, uuid.New(), ext)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        upload.Body,
		ContentType: aws.String(upload.ContentType),
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := s.uploader.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload image to S3: %w", err)
	}
	slog.InfoContext(ctx, "uploaded recipe image",
		slog.String("recipe_id", id.String()),
		slog.String("key", key),
	)

	return s.recipes.SetImageURL(ctx, id, s.publicURL(key))
}

func extensionFor(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImageType, contentType)
	}
	ext, ok := imageExtensions[strings.ToLower(mediaType)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImageType, mediaType)
	}
	return ext, nil
}
