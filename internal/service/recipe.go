package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebox/backend/internal/cache"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// TopRatedLimit is the maximum number of recipes returned by TopRated
const TopRatedLimit = 5

// RecipeService handles recipe operations
type RecipeService struct {
	db    *gorm.DB
	cache *cache.RecipeCache
	now   func() time.Time
}

// NewRecipeService creates a new RecipeService instance. recipeCache may be nil.
func NewRecipeService(db *gorm.DB, recipeCache *cache.RecipeCache) *RecipeService {
	return &RecipeService{
		db:    db,
		cache: recipeCache,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// ListRecipes returns every recipe, oldest first
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	recipes := make([]*model.Recipe, 0)
	if err := s.db.WithContext(ctx).Order("date_added ASC").Order("id ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.cache.Aside(ctx, cache.RecipeKey(id), &recipe, func() error {
		return s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error
	})
	if err != nil {
		return nil, wrapErr(err, "get recipe")
	}
	return &recipe, nil
}

// CreateRecipe stores a new recipe with a server-assigned id and defaults
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*model.Recipe, error) {
	recipe := newRecipe(req, s.now())
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	s.cache.Invalidate(ctx, cache.TopRatedKey)
	return recipe, nil
}

// UpdateRecipe applies the fields present in req and returns the merged record
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	updates := updateColumns(req)

	var recipe model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&recipe, "id = ?", id).Error
	})
	if err != nil {
		return nil, wrapErr(err, "update recipe")
	}

	s.cache.InvalidateRecipe(ctx, id)
	return &recipe, nil
}

// DeleteRecipe removes a recipe. Deleting an unknown id is not an error.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	s.cache.InvalidateRecipe(ctx, id)
	return nil
}

// ListByCategory returns recipes whose category equals category exactly
func (s *RecipeService) ListByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	recipes := make([]*model.Recipe, 0)
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("date_added ASC").
		Order("id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by category: %w", err)
	}
	return recipes, nil
}

// TopRated returns up to TopRatedLimit recipes by descending rating. Ties
// are broken by date added, then id, so the order is stable.
func (s *RecipeService) TopRated(ctx context.Context) ([]*model.Recipe, error) {
	recipes := make([]*model.Recipe, 0, TopRatedLimit)
	err := s.cache.Aside(ctx, cache.TopRatedKey, &recipes, func() error {
		return s.db.WithContext(ctx).
			Order("ratings DESC").
			Order("date_added ASC").
			Order("id ASC").
			Limit(TopRatedLimit).
			Find(&recipes).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list top-rated recipes: %w", err)
	}
	return recipes, nil
}

// AddComment appends a comment dated now and returns the updated recipe
func (s *RecipeService) AddComment(ctx context.Context, id uuid.UUID, req *types.AddCommentRequest) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}
		recipe.Comments = append(recipe.Comments, model.Comment{
			User:    req.User,
			Comment: req.Comment,
			Date:    s.now(),
		})
		return tx.Model(&recipe).Update("comments", recipe.Comments).Error
	})
	if err != nil {
		return nil, wrapErr(err, "add comment")
	}

	s.cache.InvalidateRecipe(ctx, id)
	return &recipe, nil
}

// IncrementFavorites adds exactly one to the favorites counter
func (s *RecipeService) IncrementFavorites(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.updateColumn(ctx, id, "favorites", gorm.Expr("favorites + ?", 1))
	if err != nil {
		return nil, wrapErr(err, "increment favorites")
	}
	return recipe, nil
}

// SetImageURL replaces the image URL of a recipe
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*model.Recipe, error) {
	recipe, err := s.updateColumn(ctx, id, "image_url", imageURL)
	if err != nil {
		return nil, wrapErr(err, "set image url")
	}
	return recipe, nil
}

// updateColumn writes a single column in place and reloads the record
func (s *RecipeService) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Recipe{}).Where("id = ?", id).UpdateColumn(column, value)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&recipe, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateRecipe(ctx, id)
	return &recipe, nil
}

// forUpdate row-locks the selected recipe on postgres; sqlite serializes
// writers on its own
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func wrapErr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecipeNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func newRecipe(req *types.CreateRecipeRequest, now time.Time) *model.Recipe {
	recipe := &model.Recipe{
		Title:        req.Title,
		Ingredients:  model.StringArray(req.Ingredients),
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		PrepTime:     req.PrepTime,
		Servings:     req.Servings,
		Author:       req.Author,
		DateAdded:    now,
		Ratings:      req.Ratings,
		Comments:     toComments(req.Comments, now),
		Favorites:    req.Favorites,
	}
	if req.DateAdded != nil {
		recipe.DateAdded = req.DateAdded.UTC().Truncate(time.Microsecond)
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = model.StringArray{}
	}
	return recipe
}

func toComments(in []types.CommentInput, now time.Time) model.Comments {
	out := make(model.Comments, 0, len(in))
	for _, c := range in {
		date := now
		if c.Date != nil {
			date = c.Date.UTC().Truncate(time.Microsecond)
		}
		out = append(out, model.Comment{User: c.User, Comment: c.Comment, Date: date})
	}
	return out
}

// updateColumns maps the non-nil fields of req to their store columns
func updateColumns(req *types.UpdateRecipeRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req == nil {
		return updates
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Ingredients != nil {
		ingredients := model.StringArray(*req.Ingredients)
		if ingredients == nil {
			ingredients = model.StringArray{}
		}
		updates["ingredients"] = ingredients
	}
	if req.Instructions != nil {
		updates["instructions"] = *req.Instructions
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.PrepTime != nil {
		updates["prep_time"] = *req.PrepTime
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.DateAdded != nil {
		updates["date_added"] = req.DateAdded.UTC().Truncate(time.Microsecond)
	}
	if req.Ratings != nil {
		updates["ratings"] = *req.Ratings
	}
	return updates
}
