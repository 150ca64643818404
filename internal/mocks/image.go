package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
)

// MockImageService is a mock implementation of the image service
type MockImageService struct {
	mock.Mock
}

// UploadRecipeImage mocks the UploadRecipeImage method
func (m *MockImageService) UploadRecipeImage(ctx context.Context, id uuid.UUID, upload service.ImageUpload) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, id, upload))
}

// MockObjectUploader is a mock of the S3 PutObject call
type MockObjectUploader struct {
	mock.Mock
}

// PutObject mocks the PutObject method
func (m *MockObjectUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}
