package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func recipeResult(args mock.Arguments) (*model.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func recipesResult(args mock.Arguments) ([]*model.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	return recipesResult(m.Called(ctx))
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, id))
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, req))
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, id, req))
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// ListByCategory mocks the ListByCategory method
func (m *MockRecipeService) ListByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	return recipesResult(m.Called(ctx, category))
}

// TopRated mocks the TopRated method
func (m *MockRecipeService) TopRated(ctx context.Context) ([]*model.Recipe, error) {
	return recipesResult(m.Called(ctx))
}

// AddComment mocks the AddComment method
func (m *MockRecipeService) AddComment(ctx context.Context, id uuid.UUID, req *types.AddCommentRequest) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, id, req))
}

// IncrementFavorites mocks the IncrementFavorites method
func (m *MockRecipeService) IncrementFavorites(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, id))
}

// SetImageURL mocks the SetImageURL method
func (m *MockRecipeService) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, id, imageURL))
}
