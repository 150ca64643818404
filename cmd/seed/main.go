package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

var sampleRecipes = []types.CreateRecipeRequest{
	{
		Title:        "Tomato Soup",
		Ingredients:  []string{"tomatoes", "onion", "garlic", "vegetable stock", "cream"},
		Instructions: "Sweat the onion and garlic, add tomatoes and stock, simmer 20 minutes, blend and finish with cream.",
		Category:     "dinner",
		PrepTime:     30,
		Servings:     4,
		Author:       "Ana",
		Ratings:      4.5,
	},
	{
		Title:        "Pancakes",
		Ingredients:  []string{"flour", "milk", "eggs", "sugar", "baking powder"},
		Instructions: "Whisk everything into a batter, rest 10 minutes and cook ladlefuls on a hot griddle.",
		Category:     "breakfast",
		PrepTime:     20,
		Servings:     2,
		Author:       "Ben",
		Ratings:      4,
	},
	{
		Title:        "Chocolate Mousse",
		Ingredients:  []string{"dark chocolate", "eggs", "sugar", "cream"},
		Instructions: "Melt the chocolate, fold in yolks, whipped cream and beaten whites, chill overnight.",
		Category:     "dessert",
		PrepTime:     25,
		Servings:     6,
		Author:       "Chloe",
		Ratings:      5,
	},
	{
		Title:        "Greek Salad",
		Ingredients:  []string{"cucumber", "tomatoes", "red onion", "feta", "olives", "olive oil"},
		Instructions: "Chop the vegetables, top with feta and olives, dress with olive oil and oregano.",
		Category:     "lunch",
		PrepTime:     10,
		Servings:     2,
		Author:       "Dimitri",
		Ratings:      3.5,
	},
	{
		Title:        "Lemon Tart",
		Ingredients:  []string{"shortcrust pastry", "lemons", "eggs", "sugar", "butter"},
		Instructions: "Blind bake the pastry, cook the lemon curd, fill and bake until just set.",
		Category:     "dessert",
		PrepTime:     60,
		Servings:     8,
		Author:       "Eve",
		Ratings:      4.8,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return err
	}

	ctx := context.Background()
	recipeService := service.NewRecipeService(db, nil)
	for i := range sampleRecipes {
		recipe, err := recipeService.CreateRecipe(ctx, &sampleRecipes[i])
		if err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", sampleRecipes[i].Title, err)
		}
		logger.Info("seeded recipe", slog.String("id", recipe.ID.String()), slog.String("title", recipe.Title))
	}
	return nil
}
