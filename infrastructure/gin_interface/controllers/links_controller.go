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

type LinksController interface {
	CreateLink(c *gin.Context)
	UpdateLink(c *gin.Context)
	GenerateScripts(c *gin.Context)
	SelectScript(c *gin.Context)
	GenerateAudio(c *gin.Context)
	RemoveVoiceMessage(c *gin.Context)
	GenerateWelcomeAudio(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type linksController struct {
	logger   outbound.LoggerPort
	profiles outbound.ProfileStorePort
	pipeline inbound.LinkPipelinePort
}

func NewLinksController(
	logger outbound.LoggerPort,
	profiles outbound.ProfileStorePort,
	pipeline inbound.LinkPipelinePort,
) LinksController {
	return &linksController{
		logger:   logger,
		profiles: profiles,
		pipeline: pipeline,
	}
}

func (l *linksController) CreateLink(c *gin.Context) {
	var req dto.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link := domain.Link{
		ID:      uuid.NewString(),
		OwnerID: c.GetString(middleware.ContextUserIDKey),
		Title:   req.Title,
		URL:     req.URL,
		Active:  true,
	}
	if err := l.profiles.SaveLink(c, link); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewLinkResponse(link))
}

func (l *linksController) UpdateLink(c *gin.Context) {
	link, ok := l.ownedLink(c)
	if !ok {
		return
	}

	var req dto.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.URL != nil && *req.URL != link.URL {
		link.URL = *req.URL
		// Stale cache and scripts would describe the old destination.
		link.ScrapedContent = ""
		link.ScriptBrief = ""
		link.ScriptStandard = ""
		link.ScriptConversational = ""
	}
	if req.Active != nil {
		link.Active = *req.Active
	}
	if req.Position != nil {
		link.Position = *req.Position
	}

	if err := l.profiles.SaveLink(c, link); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLinkResponse(link))
}

func (l *linksController) GenerateScripts(c *gin.Context) {
	link, ok := l.ownedLink(c)
	if !ok {
		return
	}

	candidates, err := l.pipeline.GenerateScripts(c, link.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GenerateScriptsResponse{Scripts: candidates})
}

func (l *linksController) SelectScript(c *gin.Context) {
	link, ok := l.ownedLink(c)
	if !ok {
		return
	}

	var req dto.SelectScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chosen, err := l.pipeline.SelectScript(c, link.ID, inbound.ScriptSelection{
		Script:     req.Script,
		CustomText: req.CustomText,
		Kind:       domain.VariationKind(req.ScriptType),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SelectScriptResponse{Script: chosen})
}

func (l *linksController) GenerateAudio(c *gin.Context) {
	link, ok := l.ownedLink(c)
	if !ok {
		return
	}

	artifact, err := l.pipeline.GenerateAudio(c, link.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artifact)
}

func (l *linksController) RemoveVoiceMessage(c *gin.Context) {
	link, ok := l.ownedLink(c)
	if !ok {
		return
	}

	if err := l.pipeline.RemoveVoiceMessage(c, link.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (l *linksController) GenerateWelcomeAudio(c *gin.Context) {
	var req dto.WelcomeAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artifact, err := l.pipeline.GenerateWelcomeAudio(c, c.GetString(middleware.ContextUserIDKey), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artifact)
}

// ownedLink loads the path link and enforces that it belongs to the caller.
// A link owned by someone else reads as not found.
func (l *linksController) ownedLink(c *gin.Context) (domain.Link, bool) {
	link, err := l.profiles.GetLink(c, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return domain.Link{}, false
	}
	if link.OwnerID != c.GetString(middleware.ContextUserIDKey) {
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
		return domain.Link{}, false
	}
	return link, true
}

func (l *linksController) RegisterRoutes(g *gin.Engine) {
	g.POST("/links", l.CreateLink)
	g.PUT("/links/:id", l.UpdateLink)
	g.POST("/links/:id/scripts", l.GenerateScripts)
	g.POST("/links/:id/scripts/select", l.SelectScript)
	g.POST("/links/:id/audio", l.GenerateAudio)
	g.DELETE("/links/:id/audio", l.RemoveVoiceMessage)
	g.POST("/profile/welcome-audio", l.GenerateWelcomeAudio)
}
