package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gbessoni/selfie-fm/application/ports/inbound"
	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
	"github.com/gbessoni/selfie-fm/infrastructure/gin_interface/dto"
	"github.com/gbessoni/selfie-fm/middleware"
)

type ImportController interface {
	ImportProfile(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type importController struct {
	logger   outbound.LoggerPort
	profiles outbound.ProfileStorePort
	importer inbound.LinktreeImporterPort
}

func NewImportController(
	logger outbound.LoggerPort,
	profiles outbound.ProfileStorePort,
	importer inbound.LinktreeImporterPort,
) ImportController {
	return &importController{
		logger:   logger,
		profiles: profiles,
		importer: importer,
	}
}

// ImportProfile pulls a link-in-bio page and materializes its links as the
// caller's own. Profile fields are only filled in where still empty, the
// import never clobbers what the user already wrote.
func (i *importController) ImportProfile(c *gin.Context) {
	var req dto.ImportProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := i.importer.Import(c, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	owner, err := i.profiles.GetUser(c, c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	if owner.DisplayName == "" {
		owner.DisplayName = profile.DisplayName
	}
	if owner.Bio == "" {
		owner.Bio = profile.Bio
	}
	if err := i.profiles.SaveUser(c, owner); err != nil {
		respondError(c, err)
		return
	}

	for position, imported := range profile.Links {
		link := domain.Link{
			ID:       uuid.NewString(),
			OwnerID:  owner.ID,
			Title:    imported.Title,
			URL:      imported.URL,
			Active:   true,
			Position: position,
		}
		if err := i.profiles.SaveLink(c, link); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.ImportProfileResponse{
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		Links:       profile.Links,
	})
}

func (i *importController) RegisterRoutes(g *gin.Engine) {
	g.POST("/import/linktree", i.ImportProfile)
}
