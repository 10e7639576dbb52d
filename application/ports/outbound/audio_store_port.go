package outbound

import "io"

// AudioStorePort is the artifact store for synthesized audio and uploaded
// voice samples. Paths are relative to the audio root and stored verbatim on
// the owning record.
type AudioStorePort interface {
	// SaveStream writes body incrementally to a new timestamped file for
	// slot inside dir and returns its relative path. An empty body is an
	// error; no file is left behind on failure.
	SaveStream(dir, slot string, body io.Reader) (string, error)
	// Save writes an in-memory payload the same way.
	Save(dir, slot string, data []byte) (string, error)
	Delete(relativePath string) error
	Exists(relativePath string) bool
}
