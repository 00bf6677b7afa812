package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/okozlov/music-trends/app/database"
)

// Translator is the best-effort translation stage. Every failure degrades
// to an empty translation; nothing here can fail the run. A zero endpoint
// disables the stage entirely.
type Translator struct {
	endpoint   string
	targetLang string
	httpClient *http.Client
	cache      database.TranslationRepository

	memo      map[string]string
	degraded  bool
	cacheWarn sync.Once
}

func New(endpoint, targetLang string, httpClient *http.Client, cache database.TranslationRepository) *Translator {
	return &Translator{
		endpoint:   endpoint,
		targetLang: targetLang,
		httpClient: httpClient,
		cache:      cache,
		memo:       make(map[string]string),
	}
}

func (t *Translator) Enabled() bool {
	return t.endpoint != ""
}

// Run translates all texts and returns a map keyed by source text. Texts
// that could not be translated are absent from the map. After the first
// endpoint failure the remaining texts are skipped for this run.
func (t *Translator) Run(ctx context.Context, texts []string) map[string]string {
	if !t.Enabled() {
		return nil
	}

	out := make(map[string]string)
	for _, text := range texts {
		if text == "" || t.degraded {
			continue
		}
		if translated := t.translate(ctx, text); translated != "" {
			out[text] = translated
		}
	}

	if len(out) > 0 {
		slog.Info("Translation stage completed",
			"lang", t.targetLang, "translated", len(out), "requested", len(texts))
	}
	return out
}

func (t *Translator) translate(ctx context.Context, text string) string {
	if translated, ok := t.memo[text]; ok {
		return translated
	}

	if t.cache != nil {
		translated, ok, err := t.cache.GetTranslation(text, t.targetLang)
		if err != nil {
			t.warnCacheDegraded(err)
		} else if ok {
			t.memo[text] = translated
			return translated
		}
	}

	translated, err := t.request(ctx, text)
	if err != nil {
		slog.Warn("Translation failed, continuing without it",
			"lang", t.targetLang, "error", err)
		t.degraded = true
		return ""
	}

	t.memo[text] = translated
	if t.cache != nil {
		if err := t.cache.SaveTranslation(text, t.targetLang, translated, time.Now()); err != nil {
			t.warnCacheDegraded(err)
		}
	}
	return translated
}

func (t *Translator) request(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "en",
		"target": t.targetLang,
		"format": "text",
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translation response: %w", err)
	}

	var decoded struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if decoded.TranslatedText == "" {
		return "", fmt.Errorf("translation response carried no text")
	}
	return decoded.TranslatedText, nil
}

func (t *Translator) warnCacheDegraded(err error) {
	t.cacheWarn.Do(func() {
		slog.Warn("Translation cache unavailable, translating without it", "error", err)
	})
}
