// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

// MemoryStore is an in-memory list store satisfying the list engine's Store contract.
type MemoryStore struct {
	mu    sync.Mutex
	lists map[models.ListKey][]string
	Saves int
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: make(map[models.ListKey][]string)}
}

func (m *MemoryStore) GetList(ctx context.Context, key models.ListKey) (*models.ItemList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, ok := m.lists[key]
	if !ok {
		return nil, shared.ErrListNotFound
	}
	return &models.ItemList{Key: key, Items: append([]string{}, items...)}, nil
}

func (m *MemoryStore) UpdateList(ctx context.Context, key models.ListKey, fn func(*models.ItemList) error) (*models.ItemList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := models.NewItemList(key)
	if items, ok := m.lists[key]; ok {
		list.Items = append(list.Items, items...)
	}
	if err := fn(list); err != nil {
		return list, err
	}

	m.lists[key] = append([]string{}, list.Items...)
	m.Saves++
	return list, nil
}

// Set replaces the list stored under key.
func (m *MemoryStore) Set(key models.ListKey, items ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append([]string{}, items...)
}

// Items returns a copy of the list under key and whether it exists.
func (m *MemoryStore) Items(key models.ListKey) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.lists[key]
	return append([]string{}, items...), ok
}

// FailingStore returns errors from the list store contract.
//
// With FailOnSave set, UpdateList loads an empty list and runs fn before failing, simulating a write failure.
type FailingStore struct {
	Err        error
	FailOnSave bool
}

func (f *FailingStore) err() error {
	if f.Err != nil {
		return f.Err
	}
	return shared.ErrStorage
}

func (f *FailingStore) GetList(ctx context.Context, key models.ListKey) (*models.ItemList, error) {
	return nil, f.err()
}

func (f *FailingStore) UpdateList(ctx context.Context, key models.ListKey, fn func(*models.ItemList) error) (*models.ItemList, error) {
	if !f.FailOnSave {
		return nil, f.err()
	}
	list := models.NewItemList(key)
	list.Append("existing")
	if err := fn(list); err != nil {
		return list, err
	}
	return nil, f.err()
}

// RecordingReplier captures delivered chunks per conversation.
type RecordingReplier struct {
	mu     sync.Mutex
	Chunks map[string][]models.Chunk
	Err    error
	done   chan struct{}
	want   int
}

// NewRecordingReplier creates a replier whose Done channel closes after want chunks are delivered.
func NewRecordingReplier(want int) *RecordingReplier {
	return &RecordingReplier{Chunks: make(map[string][]models.Chunk), done: make(chan struct{}), want: want}
}

func (r *RecordingReplier) Reply(ctx context.Context, conv models.Conversation, chunk models.Chunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.Chunks[conv.ID] = append(r.Chunks[conv.ID], chunk)

	total := 0
	for _, cs := range r.Chunks {
		total += len(cs)
	}
	if total == r.want {
		close(r.done)
	}
	return nil
}

// Done closes once the expected number of chunks has been delivered.
func (r *RecordingReplier) Done() <-chan struct{} {
	return r.done
}

// Get returns the chunks delivered to a conversation.
func (r *RecordingReplier) Get(conversationID string) []models.Chunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Chunk{}, r.Chunks[conversationID]...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// Texts returns the Text field of each chunk.
func Texts(chunks []models.Chunk) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.Text)
	}
	return out
}
