package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/application/services"
	"github.com/gbessoni/selfie-fm/config"
	"github.com/gbessoni/selfie-fm/infrastructure/adapters"
	"github.com/gbessoni/selfie-fm/infrastructure/gin_interface/controllers"
	"github.com/gbessoni/selfie-fm/middleware"
)

func main() {
	scraperConfig, err := config.GetScraperConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get scraper config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	storageConfig, err := config.GetStorageConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get storage config")
	}

	authConfig, err := config.GetAuthConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get auth config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(32, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	profileStore, err := adapters.NewSqliteStore(storageConfig.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open profile store")
	}

	audioStore, err := adapters.NewLocalAudioStore(storageConfig.AudioRoot)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create audio store")
	}

	pageFetcher := adapters.NewPageFetcher(scraperConfig, zeroLogger)

	// Provider selection is capability-checked: OpenAI wins when both keys
	// are set, a nil generator degrades script generation to a 503.
	var textGenerator outbound.TextGeneratorPort
	if gptConfig := config.GetGptConfig(); gptConfig != nil {
		textGenerator = adapters.NewOpenAiTextGenerator(gptConfig, zeroLogger)
	} else if anthropicConfig := config.GetAnthropicConfig(); anthropicConfig != nil {
		textGenerator = adapters.NewAnthropicTextGenerator(anthropicConfig, zeroLogger)
	} else {
		log.Warn().Msg("No text generation provider configured")
	}

	var voiceProvider outbound.VoiceProviderPort
	if elevenLabsConfig != nil {
		voiceProvider = adapters.NewElevenLabsVoiceProvider(elevenLabsConfig)
	} else {
		log.Warn().Msg("No voice synthesis provider configured")
	}

	contentExtractor := services.NewContentExtractor(pageFetcher, zeroLogger)

	scriptGenerator := services.NewScriptGenerator(textGenerator, zeroLogger)

	voiceGateway := services.NewVoiceGateway(voiceProvider, audioStore, profileStore,
		workerPool, services.VoiceSamplesDir, zeroLogger)

	linkPipeline := services.NewLinkPipeline(profileStore, audioStore,
		contentExtractor, scriptGenerator, voiceGateway, zeroLogger)

	linktreeImporter := services.NewLinktreeImporter(pageFetcher, zeroLogger)

	loginLimiter := services.NewLoginLimiter(services.NewMemoryAttemptStore(),
		authConfig.LoginMaxAttempts, authConfig.LoginWindow)

	authHandler := middleware.NewAuthHandler(authConfig.SessionSecret, authConfig.SessionTTL)

	linksController := controllers.NewLinksController(zeroLogger, profileStore, linkPipeline)
	voiceController := controllers.NewVoiceController(zeroLogger, voiceGateway)
	importController := controllers.NewImportController(zeroLogger, profileStore, linktreeImporter)
	authController := controllers.NewAuthController(zeroLogger, profileStore, authHandler, loginLimiter)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(authHandler.AuthMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController.RegisterRoutes(router)
	linksController.RegisterRoutes(router)
	voiceController.RegisterRoutes(router)
	importController.RegisterRoutes(router)

	if err := router.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
