package dto

import "github.com/gbessoni/selfie-fm/domain"

type ImportProfileRequest struct {
	URL string `json:"url" binding:"required"`
}

type ImportProfileResponse struct {
	Username    string                `json:"username"`
	DisplayName string                `json:"display_name"`
	Bio         string                `json:"bio"`
	Links       []domain.ImportedLink `json:"links"`
}
