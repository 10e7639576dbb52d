package config

import "os"

type StorageConfig struct {
	DatabasePath string
	AudioRoot    string
}

func GetStorageConfig() (*StorageConfig, error) {
	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "./selfie.db"
	}
	audioRoot := os.Getenv("AUDIO_ROOT")
	if audioRoot == "" {
		audioRoot = "./audio"
	}
	return &StorageConfig{
		DatabasePath: databasePath,
		AudioRoot:    audioRoot,
	}, nil
}
