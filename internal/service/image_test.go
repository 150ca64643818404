package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/mocks"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
)

func publicURL(key string) string { return "https://cdn.example/" + key }

func TestUploadRecipeImage(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	uploader := new(mocks.MockObjectUploader)
	svc := service.NewImageService(uploader, "recipe-images", publicURL, recipes)

	id := uuid.New()
	recipes.On("GetRecipe", mock.Anything, id).Return(&model.Recipe{ID: id}, nil)

	var key string
	uploader.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		key = *in.Key
		return *in.Bucket == "recipe-images" &&
			*in.ContentType == "image/png" &&
			*in.ContentLength == 4 &&
			strings.HasPrefix(*in.Key, "recipes/"+id.String()+"/") &&
			strings.HasSuffix(*in.Key, ".png")
	})).Return(&s3.PutObjectOutput{}, nil)

	recipes.On("SetImageURL", mock.Anything, id, mock.MatchedBy(func(u string) bool {
		return u == publicURL(key)
	})).Return(&model.Recipe{ID: id, ImageURL: "set"}, nil)

	got, err := svc.UploadRecipeImage(context.Background(), id, service.ImageUpload{
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("\x89PNG"),
	})
	require.NoError(t, err)
	assert.Equal(t, "set", got.ImageURL)

	recipes.AssertExpectations(t)
	uploader.AssertExpectations(t)
}

func TestUploadRecipeImageRejectsNonImages(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	uploader := new(mocks.MockObjectUploader)
	svc := service.NewImageService(uploader, "b", publicURL, recipes)

	_, err := svc.UploadRecipeImage(context.Background(), uuid.New(), service.ImageUpload{
		ContentType: "text/plain",
		Body:        strings.NewReader("hi"),
	})
	assert.ErrorIs(t, err, service.ErrUnsupportedImageType)

	recipes.AssertNotCalled(t, "GetRecipe", mock.Anything, mock.Anything)
	uploader.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestUploadRecipeImageUnknownRecipe(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	uploader := new(mocks.MockObjectUploader)
	svc := service.NewImageService(uploader, "b", publicURL, recipes)

	id := uuid.New()
	recipes.On("GetRecipe", mock.Anything, id).Return(nil, service.ErrRecipeNotFound)

	_, err := svc.UploadRecipeImage(context.Background(), id, service.ImageUpload{
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpg"),
	})
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	uploader.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestUploadRecipeImageS3Failure(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	uploader := new(mocks.MockObjectUploader)
	svc := service.NewImageService(uploader, "b", publicURL, recipes)

	id := uuid.New()
	recipes.On("GetRecipe", mock.Anything, id).Return(&model.Recipe{ID: id}, nil)
	uploader.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := svc.UploadRecipeImage(context.Background(), id, service.ImageUpload{
		ContentType: "image/webp",
		Body:        strings.NewReader("webp"),
	})
	assert.ErrorContains(t, err, "access denied")
	recipes.AssertNotCalled(t, "SetImageURL", mock.Anything, mock.Anything, mock.Anything)
}
