package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/datavet/pet-service/internal/application"
	petDomain "github.com/datavet/pet-service/internal/domain/pet"
	"github.com/datavet/pet-service/internal/response"
)

// PetHandler handles HTTP requests for pet operations.
type PetHandler struct {
	service *application.PetService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// RegisterRoutes registers all pet routes under /api/pets.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup) {
	pets := r.Group("/api/pets")
	{
		pets.GET("", h.GetAll)
		pets.POST("", h.Create)
		pets.GET("/stats", h.Stats)
		pets.GET("/search", h.Search)
		pets.GET("/health", h.Health)
		pets.GET("/species/:species", h.GetBySpecies)
		pets.GET("/owner/:ownerName", h.GetByOwner)
		pets.GET("/:id", h.GetByID)
		pets.PUT("/:id", h.Update)
		pets.DELETE("/:id", h.Delete)
	}
}

// GetAll handles GET /api/pets.
func (h *PetHandler) GetAll(c *gin.Context) {
	pets, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pets)
}

// GetByID handles GET /api/pets/:id.
func (h *PetHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	pet, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pet)
}

// Create handles POST /api/pets.
func (h *PetHandler) Create(c *gin.Context) {
	var req application.PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pet, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pet)
}

// Update handles PUT /api/pets/:id. The payload replaces every mutable field
// of the stored record.
func (h *PetHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	var req application.PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pet, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pet)
}

// Delete handles DELETE /api/pets/:id. A missing id yields a bodyless 404.
func (h *PetHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.NotFound(c)
		return
	}
	response.Success(c, gin.H{"success": true, "message": "Pet deleted successfully"})
}

// GetBySpecies handles GET /api/pets/species/:species.
func (h *PetHandler) GetBySpecies(c *gin.Context) {
	species, err := petDomain.ParseSpecies(c.Param("species"))
	if err != nil {
		response.Error(c, err)
		return
	}

	pets, err := h.service.GetBySpecies(c.Request.Context(), species)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pets)
}

// Search handles GET /api/pets/search?q=.
func (h *PetHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "query parameter 'q' is required")
		return
	}

	pets, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pets)
}

// GetByOwner handles GET /api/pets/owner/:ownerName.
func (h *PetHandler) GetByOwner(c *gin.Context) {
	pets, err := h.service.GetByOwner(c.Request.Context(), c.Param("ownerName"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pets)
}

// Stats handles GET /api/pets/stats.
func (h *PetHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// Health handles GET /api/pets/health.
func (h *PetHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "pet-service"})
}
