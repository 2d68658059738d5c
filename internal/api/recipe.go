package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/service"
)

// RecipeHandler serves the recipe catalog. imageService may be nil when no
// object storage is configured; the upload endpoint then reports the feature
// as unavailable.
type RecipeHandler struct {
	recipeService *service.RecipeService
	imageService  *service.ImageService
}

func NewRecipeHandler(recipeService *service.RecipeService, imageService *service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipe")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/recommended", h.RecommendedRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/:id/image", h.UploadRecipeImage)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.List(c.Request.Context(), c.Query("dietType"))
	if err != nil {
		log.Printf("[RecipeHandler] list recipes failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching recipes"})
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found"})
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found"})
			return
		}
		log.Printf("[RecipeHandler] get recipe failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) RecommendedRecipes(c *gin.Context) {
	var ingredients []string
	if raw := c.Query("ingredients"); raw != "" {
		for _, ing := range strings.Split(raw, ",") {
			if ing = strings.TrimSpace(ing); ing != "" {
				ingredients = append(ingredients, ing)
			}
		}
	}

	recipes, err := h.recipeService.Recommended(c.Request.Context(), c.Query("dietType"), ingredients)
	if err != nil {
		log.Printf("[RecipeHandler] recommended recipes failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching recipes"})
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// UploadRecipeImage attaches an uploaded image to a recipe.
func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image storage not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing image file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to read image file"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to read image file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	recipe, err := h.recipeService.AttachImage(c.Request.Context(), id, func() (string, error) {
		return h.imageService.UploadRecipeImage(c.Request.Context(), data, contentType)
	})
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found"})
			return
		}
		log.Printf("[RecipeHandler] image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading image"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}
