package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gbessoni/selfie-fm/application/ports/inbound"
	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
	"github.com/gbessoni/selfie-fm/infrastructure/gin_interface/dto"
	"github.com/gbessoni/selfie-fm/middleware"
)

// maxUploadBytes bounds the multipart body; three samples at the upper
// sample size plus headroom.
const maxUploadBytes = 10 << 20

type VoiceController interface {
	CloneVoice(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type voiceController struct {
	logger  outbound.LoggerPort
	gateway inbound.VoiceGatewayPort
}

func NewVoiceController(logger outbound.LoggerPort, gateway inbound.VoiceGatewayPort) VoiceController {
	return &voiceController{
		logger:  logger,
		gateway: gateway,
	}
}

func (v *voiceController) CloneVoice(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form with voice samples"})
		return
	}

	files := form.File["samples"]
	samples := make([]domain.VoiceSample, 0, len(files))
	for _, header := range files {
		sample, err := readSample(header)
		if err != nil {
			v.logger.Error(err, "failed to read uploaded sample")
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded sample"})
			return
		}
		samples = append(samples, sample)
	}

	var displayName string
	if names := form.Value["name"]; len(names) > 0 {
		displayName = names[0]
	}

	voiceID, err := v.gateway.EnsureVoiceIdentity(c, inbound.EnsureVoiceIdentityParams{
		OwnerID:     c.GetString(middleware.ContextUserIDKey),
		DisplayName: displayName,
		Samples:     samples,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CloneVoiceResponse{VoiceID: voiceID})
}

func readSample(header *multipart.FileHeader) (domain.VoiceSample, error) {
	file, err := header.Open()
	if err != nil {
		return domain.VoiceSample{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.VoiceSample{}, err
	}
	return domain.VoiceSample{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (v *voiceController) RegisterRoutes(g *gin.Engine) {
	g.POST("/voice/clone", v.CloneVoice)
}
