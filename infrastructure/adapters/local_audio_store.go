package adapters

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
)

// localAudioStore keeps audio artifacts on the local filesystem under a
// single root. Filenames carry the slot plus a nanosecond timestamp so
// concurrent writers never collide on the same file.
type localAudioStore struct {
	root string
}

func NewLocalAudioStore(root string) (outbound.AudioStorePort, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio root: %w", err)
	}
	return &localAudioStore{root: root}, nil
}

func (s *localAudioStore) SaveStream(dir, slot string, body io.Reader) (string, error) {
	relativePath := filepath.Join(dir, fmt.Sprintf("%s_%d.mp3", slot, time.Now().UnixNano()))
	fullPath := filepath.Join(s.root, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory %s: %w", dir, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}

	written, err := io.Copy(file, body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.discard(fullPath)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		s.discard(fullPath)
		return "", fmt.Errorf("audio body was empty")
	}

	log.Debug().Str("path", relativePath).Int64("bytes", written).Msg("Saved audio artifact")
	return relativePath, nil
}

func (s *localAudioStore) Save(dir, slot string, data []byte) (string, error) {
	return s.SaveStream(dir, slot, bytes.NewReader(data))
}

func (s *localAudioStore) Delete(relativePath string) error {
	return os.Remove(filepath.Join(s.root, relativePath))
}

func (s *localAudioStore) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(s.root, relativePath))
	return err == nil
}

func (s *localAudioStore) discard(fullPath string) {
	if err := os.Remove(fullPath); err != nil {
		log.Warn().Err(err).Str("path", fullPath).Msg("Failed to remove partial audio file")
	}
}
