package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
)

type fakeFetcher struct {
	pages   map[string]outbound.FetchedPage
	err     error
	fetches int
}

func (f *fakeFetcher) FetchPage(_ context.Context, url string) (outbound.FetchedPage, error) {
	f.fetches++
	if f.err != nil {
		return outbound.FetchedPage{}, f.err
	}
	page, ok := f.pages[url]
	if !ok {
		return outbound.FetchedPage{}, domain.Errorf(domain.ErrorFetchFailed, "no page for %s", url)
	}
	return page, nil
}

func htmlPage(body string) outbound.FetchedPage {
	return outbound.FetchedPage{
		Body:        []byte(body),
		ContentType: "text/html; charset=utf-8",
	}
}

type fakeTextGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeTextGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeTextGenerator) Name() string { return "fake" }

type fakeVoiceProvider struct {
	voiceID    string
	audio      string
	cloneCalls int
	synthCalls int
	cloneErr   error
	synthErr   error
}

func (f *fakeVoiceProvider) CreateClone(_ context.Context, _ outbound.CreateCloneRequest) (string, error) {
	f.cloneCalls++
	if f.cloneErr != nil {
		return "", f.cloneErr
	}
	return f.voiceID, nil
}

func (f *fakeVoiceProvider) Synthesize(_ context.Context, _ outbound.SynthesizeRequest) (io.ReadCloser, error) {
	f.synthCalls++
	if f.synthErr != nil {
		return nil, f.synthErr
	}
	return io.NopCloser(bytes.NewReader([]byte(f.audio))), nil
}

// memAudioStore keeps artifacts in a map, mimicking the timestamped-filename
// behavior of the filesystem store.
type memAudioStore struct {
	mu    sync.Mutex
	files map[string][]byte
	seq   int
}

func newMemAudioStore() *memAudioStore {
	return &memAudioStore{files: make(map[string][]byte)}
}

func (m *memAudioStore) SaveStream(dir, slot string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("audio body was empty")
	}
	return m.Save(dir, slot, data)
}

func (m *memAudioStore) Save(dir, slot string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	path := fmt.Sprintf("%s/%s_%d.mp3", dir, slot, m.seq)
	m.files[path] = data
	return path, nil
}

func (m *memAudioStore) Delete(relativePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[relativePath]; !ok {
		return fmt.Errorf("no such file: %s", relativePath)
	}
	delete(m.files, relativePath)
	return nil
}

func (m *memAudioStore) Exists(relativePath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[relativePath]
	return ok
}

func (m *memAudioStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

type memProfileStore struct {
	mu    sync.Mutex
	links map[string]domain.Link
	users map[string]domain.User
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{
		links: make(map[string]domain.Link),
		users: make(map[string]domain.User),
	}
}

func (m *memProfileStore) GetLink(_ context.Context, id string) (domain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.links[id]
	if !ok {
		return domain.Link{}, domain.Errorf(domain.ErrorNotFound, "link %s not found", id)
	}
	return link, nil
}

func (m *memProfileStore) SaveLink(_ context.Context, link domain.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[link.ID] = link
	return nil
}

func (m *memProfileStore) GetUser(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.Errorf(domain.ErrorNotFound, "user %s not found", id)
	}
	return user, nil
}

func (m *memProfileStore) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return domain.User{}, domain.Errorf(domain.ErrorNotFound, "user %s not found", username)
}

func (m *memProfileStore) SaveUser(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

// inlineDispatcher runs submitted tasks synchronously so tests see the
// effects of fire-and-forget work without sleeping.
type inlineDispatcher struct{}

func (inlineDispatcher) Submit(task func()) error {
	task()
	return nil
}

func validSample(size int) domain.VoiceSample {
	return domain.VoiceSample{
		Filename:    "sample.mp3",
		ContentType: "audio/mpeg",
		Data:        bytes.Repeat([]byte{0xff}, size),
	}
}
