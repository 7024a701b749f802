package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/datavet/pet-service/internal/application"
	"github.com/datavet/pet-service/internal/response"
)

// VetHandler handles HTTP requests for vet profile operations.
type VetHandler struct {
	service *application.VetService
}

// NewVetHandler creates a new VetHandler.
func NewVetHandler(service *application.VetService) *VetHandler {
	return &VetHandler{service: service}
}

// RegisterRoutes registers all vet routes under /api/vets.
func (h *VetHandler) RegisterRoutes(r *gin.RouterGroup) {
	vets := r.Group("/api/vets")
	{
		vets.GET("", h.GetAll)
		vets.POST("", h.Create)
		vets.GET("/stats", h.Stats)
		vets.GET("/search", h.Search)
		vets.GET("/available", h.GetAvailable)
		vets.GET("/specializations", h.Specializations)
		vets.GET("/specialization/:specialization", h.GetBySpecialization)
		vets.GET("/:id", h.GetByID)
		vets.PUT("/:id", h.Update)
		vets.DELETE("/:id", h.Delete)
	}
}

// GetAll handles GET /api/vets.
func (h *VetHandler) GetAll(c *gin.Context) {
	vets, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vets)
}

// GetByID handles GET /api/vets/:id.
func (h *VetHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vet ID")
		return
	}

	vet, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vet)
}

// Create handles POST /api/vets.
func (h *VetHandler) Create(c *gin.Context) {
	var req application.VetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	vet, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vet)
}

// Update handles PUT /api/vets/:id. The payload replaces every mutable field
// of the stored record.
func (h *VetHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vet ID")
		return
	}

	var req application.VetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	vet, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vet)
}

// Delete handles DELETE /api/vets/:id. A missing id yields a bodyless 404.
func (h *VetHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vet ID")
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
	response.Success(c, gin.H{"success": true, "message": "Vet deleted successfully"})
}

// GetAvailable handles GET /api/vets/available.
func (h *VetHandler) GetAvailable(c *gin.Context) {
	vets, err := h.service.GetAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vets)
}

// GetBySpecialization handles GET /api/vets/specialization/:specialization.
func (h *VetHandler) GetBySpecialization(c *gin.Context) {
	vets, err := h.service.GetBySpecialization(c.Request.Context(), c.Param("specialization"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vets)
}

// Search handles GET /api/vets/search?q=.
func (h *VetHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "query parameter 'q' is required")
		return
	}

	vets, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vets)
}

// Specializations handles GET /api/vets/specializations.
func (h *VetHandler) Specializations(c *gin.Context) {
	specs, err := h.service.Specializations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, specs)
}

// Stats handles GET /api/vets/stats.
func (h *VetHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
