package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type memoryTranslationRepo struct {
	mu    sync.Mutex
	store map[string]string
}

func newMemoryTranslationRepo() *memoryTranslationRepo {
	return &memoryTranslationRepo{store: make(map[string]string)}
}

func (r *memoryTranslationRepo) GetTranslation(sourceText, lang string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	translated, ok := r.store[lang+"\x00"+sourceText]
	return translated, ok, nil
}

func (r *memoryTranslationRepo) SaveTranslation(sourceText, lang, translated string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[lang+"\x00"+sourceText] = translated
	return nil
}

func newStubEndpoint(t *testing.T, requests *int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		var payload struct {
			Q      string `json:"q"`
			Target string `json:"target"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "[" + payload.Target + "] " + payload.Q})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunTranslatesTexts(t *testing.T) {
	requests := 0
	server := newStubEndpoint(t, &requests)

	translator := New(server.URL, "zh", server.Client(), nil)
	out := translator.Run(context.Background(), []string{"Hello", "World", ""})

	if len(out) != 2 {
		t.Fatalf("expected 2 translations, got %d", len(out))
	}
	if out["Hello"] != "[zh] Hello" {
		t.Errorf("unexpected translation: %q", out["Hello"])
	}
}

func TestRunDisabledWithoutEndpoint(t *testing.T) {
	translator := New("", "zh", http.DefaultClient, nil)
	if translator.Enabled() {
		t.Error("translator with empty endpoint must report disabled")
	}
	if out := translator.Run(context.Background(), []string{"Hello"}); out != nil {
		t.Errorf("disabled translator must return nil, got %v", out)
	}
}

func TestRunUsesPersistentCache(t *testing.T) {
	requests := 0
	server := newStubEndpoint(t, &requests)
	repo := newMemoryTranslationRepo()

	first := New(server.URL, "zh", server.Client(), repo)
	first.Run(context.Background(), []string{"Hello"})
	if requests != 1 {
		t.Fatalf("expected 1 endpoint request, got %d", requests)
	}

	second := New(server.URL, "zh", server.Client(), repo)
	out := second.Run(context.Background(), []string{"Hello"})
	if requests != 1 {
		t.Errorf("cached translation must not hit the endpoint again, got %d requests", requests)
	}
	if out["Hello"] != "[zh] Hello" {
		t.Errorf("unexpected cached translation: %q", out["Hello"])
	}
}

func TestRunDegradesOnEndpointFailure(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	translator := New(server.URL, "zh", server.Client(), nil)
	out := translator.Run(context.Background(), []string{"One", "Two", "Three"})

	if len(out) != 0 {
		t.Errorf("failed endpoint must yield no translations, got %v", out)
	}
	if requests != 1 {
		t.Errorf("expected the stage to stop after the first failure, got %d requests", requests)
	}
}
