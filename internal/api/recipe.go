package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

const (
	msgRecipeNotFound   = "Recipe not found"
	msgFetchRecipes     = "Error fetching recipes"
	msgFetchRecipe      = "Error fetching recipe"
	msgFetchTopRated    = "Error fetching top-rated recipes"
	msgCreateRecipe     = "Error creating recipe"
	msgUpdateRecipe     = "Error updating recipe"
	msgDeleteRecipe     = "Error deleting recipe"
	msgRecipeDeleted    = "Recipe deleted successfully"
	msgAddComment       = "Error adding comment"
	msgAddFavorite      = "Error adding to favorites"
	msgUploadImage      = "Error uploading image"
	msgUnsupportedImage = "Unsupported image type"
	msgImageTooLarge    = "Image too large"
)

// RecipeHandler serves the /recipes routes
type RecipeHandler struct {
	recipeService service.IRecipeService
	imageService  service.IImageService
}

// NewRecipeHandler creates a RecipeHandler. imageService may be nil, in
// which case the image upload route is not registered.
func NewRecipeHandler(recipeService service.IRecipeService, imageService service.IImageService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
	}
}

// RegisterRoutes mounts the recipe routes on router. Literal segments are
// registered ahead of the :id routes.
func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/top-rated", h.TopRated)
		recipes.GET("/category/:category", h.ListByCategory)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/comment", h.AddComment)
		recipes.POST("/:id/favorite", h.AddFavorite)
		if h.imageService != nil {
			recipes.POST("/:id/image", h.UploadImage)
		}
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgFetchRecipes, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) TopRated(c *gin.Context) {
	recipes, err := h.recipeService.TopRated(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgFetchTopRated, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) ListByCategory(c *gin.Context) {
	recipes, err := h.recipeService.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgFetchRecipes, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe answers 404 for ids that can never match as well as for
// ids with no record
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, msgRecipeNotFound, nil)
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, msgFetchRecipe, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgCreateRecipe, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgCreateRecipe, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgUpdateRecipe, err)
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgUpdateRecipe, err)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		respondStoreError(c, msgUpdateRecipe, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe succeeds whether or not the recipe existed
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgDeleteRecipe, err)
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusInternalServerError, msgDeleteRecipe, err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: msgRecipeDeleted})
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgAddComment, err)
		return
	}

	var req types.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgAddComment, err)
		return
	}

	recipe, err := h.recipeService.AddComment(c.Request.Context(), id, &req)
	if err != nil {
		respondStoreError(c, msgAddComment, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgAddFavorite, err)
		return
	}

	recipe, err := h.recipeService.IncrementFavorites(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, msgAddFavorite, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// respondStoreError maps a service error to 404 when the recipe is missing
// and to 500 with message otherwise
func respondStoreError(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrRecipeNotFound) {
		respondError(c, http.StatusNotFound, msgRecipeNotFound, nil)
		return
	}
	respondError(c, http.StatusInternalServerError, message, err)
}

// respondError writes {message} and records err on the context so the
// request logger reports it
func respondError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, types.MessageResponse{Message: message})
}
