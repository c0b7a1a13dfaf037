package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/models/dto"
	"github.com/yigit/unifms/internal/app/services"
	"github.com/yigit/unifms/internal/middleware"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

// PublicationController handles publications
type PublicationController struct {
	publicationService *services.PublicationService
}

// NewPublicationController creates a new PublicationController
func NewPublicationController(publicationService *services.PublicationService) *PublicationController {
	return &PublicationController{publicationService: publicationService}
}

func publicationInput(req dto.PublicationRequest) (services.PublicationInput, error) {
	date, err := models.ParseDate(req.PublicationDate)
	if err != nil {
		return services.PublicationInput{}, apperrors.NewValidationError(err.Error())
	}
	return services.PublicationInput{
		FacultyID:       req.FacultyID,
		Title:           req.Title,
		PublicationDate: date,
		JournalName:     req.JournalName,
		URL:             req.URL,
		AbstractText:    req.AbstractText,
		DOI:             req.DOI,
	}, nil
}

// GetAllPublications lists publications
// @Summary List publications
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]models.Publication} "Publications retrieved successfully"
// @Router /publications [get]
func (c *PublicationController) GetAllPublications(ctx *gin.Context) {
	pubs, err := c.publicationService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, pubs, "Publications retrieved successfully")
}

// GetPublicationByID retrieves a publication
// @Summary Get publication by ID
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Publication} "Publication retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Publication not found"
// @Router /publications/{id} [get]
func (c *PublicationController) GetPublicationByID(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	pub, err := c.publicationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, pub, "Publication retrieved successfully")
}

// GetPublicationsByFaculty lists a faculty member's publications, newest first
// @Summary List publications of a faculty member
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param facultyId path int true "Faculty profile ID"
// @Success 200 {object} dto.StructuredResponse{data=[]models.Publication} "Publications retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Faculty not found"
// @Router /publications/faculty/{facultyId} [get]
func (c *PublicationController) GetPublicationsByFaculty(ctx *gin.Context) {
	id, valid := parseID(ctx, "facultyId")
	if !valid {
		return
	}

	pubs, err := c.publicationService.ListByFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, pubs, "Publications retrieved successfully")
}

// CountPublicationsByFaculty counts a faculty member's publications
// @Summary Count publications of a faculty member
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param facultyId path int true "Faculty profile ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.CountResponse} "Publication count retrieved successfully"
// @Failure 404 {object} dto.StructuredResponse "Faculty not found"
// @Router /publications/faculty/{facultyId}/count [get]
func (c *PublicationController) CountPublicationsByFaculty(ctx *gin.Context) {
	id, valid := parseID(ctx, "facultyId")
	if !valid {
		return
	}

	n, err := c.publicationService.CountByFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.CountResponse{Count: n}, "Publication count retrieved successfully")
}

// SearchPublications matches title, journal and abstract case-insensitively
// @Summary Search publications
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "Keyword"
// @Success 200 {object} dto.StructuredResponse{data=[]models.Publication} "Publications retrieved successfully"
// @Failure 400 {object} dto.StructuredResponse "Missing keyword"
// @Router /publications/search [get]
func (c *PublicationController) SearchPublications(ctx *gin.Context) {
	kw, valid := keyword(ctx)
	if !valid {
		return
	}

	pubs, err := c.publicationService.Search(ctx.Request.Context(), kw)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, pubs, "Publications retrieved successfully")
}

// CreatePublication creates a publication
// @Summary Create publication
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PublicationRequest true "Publication"
// @Success 201 {object} dto.StructuredResponse{data=models.Publication} "Publication created successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request or unknown faculty"
// @Router /publications [post]
func (c *PublicationController) CreatePublication(ctx *gin.Context) {
	var req dto.PublicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	in, err := publicationInput(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pub, err := c.publicationService.Create(ctx.Request.Context(), in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, pub, "Publication created successfully")
}

// UpdatePublication updates a publication
// @Summary Update publication
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param request body dto.PublicationRequest true "Publication"
// @Success 200 {object} dto.StructuredResponse{data=models.Publication} "Publication updated successfully"
// @Failure 400 {object} dto.StructuredResponse "Invalid request or unknown faculty"
// @Failure 404 {object} dto.StructuredResponse "Publication not found"
// @Router /publications/{id} [put]
func (c *PublicationController) UpdatePublication(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	var req dto.PublicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	in, err := publicationInput(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pub, err := c.publicationService.Update(ctx.Request.Context(), id, in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, pub, "Publication updated successfully")
}

// DeletePublication removes a publication
// @Summary Delete publication
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Success 200 {object} dto.StructuredResponse "Publication deleted successfully"
// @Failure 404 {object} dto.StructuredResponse "Publication not found"
// @Router /publications/{id} [delete]
func (c *PublicationController) DeletePublication(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}

	if err := c.publicationService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Publication deleted successfully")
}
