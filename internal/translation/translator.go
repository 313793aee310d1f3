// Package translation produces best-effort translated strings for banner
// content. Resolution is strictly ordered and short-circuits on the first
// hit: no-op, static dictionary, two-tier cache, online endpoint, and
// finally the original text. A Translate call never fails from the
// caller's point of view.
package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/otelqr/guest-services-api/internal/models"
)

// Outcome labels for translation metrics.
const (
	OutcomeNoop       = "noop"
	OutcomeDictionary = "dictionary"
	OutcomeCache      = "cache"
	OutcomeOnline     = "online"
	OutcomeFallback   = "fallback"
)

// Metrics receives one observation per resolved translation.
type Metrics interface {
	RecordTranslation(outcome string)
}

// Translator implements the resolution pipeline.
type Translator struct {
	cache    Cache
	endpoint string
	online   bool
	client   *http.Client
	metrics  Metrics
	logger   *zap.Logger
}

// NewTranslator builds the pipeline. The endpoint may be empty or online
// disabled, in which case unknown strings fall through to the original.
func NewTranslator(cache Cache, endpoint string, online bool, metrics Metrics, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{
		cache:    cache,
		endpoint: endpoint,
		online:   online && endpoint != "",
		// The online fallback intentionally carries no timeout: a hung
		// request delays only that one string, each invocation being
		// independent of the rest.
		client:  &http.Client{},
		metrics: metrics,
		logger:  logger,
	}
}

// Translate resolves text into the target language. It returns the
// original text whenever the target is the source language, unset, or no
// resolution step produces a value.
func (t *Translator) Translate(ctx context.Context, text, target string) string {
	if target == "" || target == models.SourceLanguage {
		t.record(OutcomeNoop)
		return text
	}

	normalized := normalize(text)
	if normalized == "" {
		t.record(OutcomeNoop)
		return text
	}

	if value, ok := lookupDictionary(target, normalized); ok {
		// Write dictionary hits through so later lookups resolve from
		// the cache tiers directly.
		if t.cache != nil {
			t.cache.Put(ctx, target, normalized, value)
		}
		t.record(OutcomeDictionary)
		return value
	}

	if t.cache != nil {
		if value, ok := t.cache.Get(ctx, target, normalized); ok {
			t.record(OutcomeCache)
			return value
		}
	}

	if value, ok := t.translateOnline(ctx, text, target); ok {
		if t.cache != nil {
			t.cache.Put(ctx, target, normalized, value)
		}
		t.record(OutcomeOnline)
		return value
	}

	t.record(OutcomeFallback)
	return text
}

// ClearCache empties both cache tiers.
func (t *Translator) ClearCache(ctx context.Context) error {
	if t.cache == nil {
		return nil
	}
	return t.cache.Clear(ctx)
}

type onlineRequest struct {
	Text   string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type onlineResponse struct {
	TranslatedText string `json:"translatedText"`
}

// translateOnline issues the best-effort request to the external
// endpoint. Every failure mode collapses into a miss.
func (t *Translator) translateOnline(ctx context.Context, text, target string) (string, bool) {
	if !t.online {
		return "", false
	}

	payload, err := json.Marshal(onlineRequest{Text: text, Source: "auto", Target: target, Format: "text"})
	if err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Debug("online translation request failed", zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Debug("online translation rejected", zap.Int("status", resp.StatusCode))
		return "", false
	}

	var body onlineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.TranslatedText == "" {
		return "", false
	}

	return body.TranslatedText, true
}

func (t *Translator) record(outcome string) {
	if t.metrics != nil {
		t.metrics.RecordTranslation(outcome)
	}
}
