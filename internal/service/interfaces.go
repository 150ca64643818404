package service

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListByCategory(ctx context.Context, category string) ([]*model.Recipe, error)
	TopRated(ctx context.Context) ([]*model.Recipe, error)
	AddComment(ctx context.Context, id uuid.UUID, req *types.AddCommentRequest) (*model.Recipe, error)
	IncrementFavorites(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*model.Recipe, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	UploadRecipeImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*model.Recipe, error)
}

// ObjectUploader is the subset of the S3 client used for uploads
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}
