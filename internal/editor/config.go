package editor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"labdoc-data/internal/store"
)

// Save-callback protocol of the external editor. Status 2 means the document
// is ready to be saved; everything else is acknowledged without action.
const StatusReadyToSave = 2

// CallbackRequest is the JSON body the editor posts to a callback URL.
type CallbackRequest struct {
	Status int    `json:"status"`
	URL    string `json:"url"`
}

// CallbackResponse is the exact reply shape the editor expects. Do not
// extend it: unknown members make some editor builds treat the save as
// failed.
type CallbackResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message,omitempty"`
}

// ConfigBuilder assembles the configuration payload handed to the embedded
// editor, including the cache-busting document key.
type ConfigBuilder struct {
	kv            store.KV
	publicBaseURL string
	logger        *zap.Logger
}

func NewConfigBuilder(kv store.KV, publicBaseURL string, logger *zap.Logger) *ConfigBuilder {
	return &ConfigBuilder{
		kv:            kv,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Build returns the editor configuration for one document. resourcePath is
// the API path of the document resource (e.g. "/api/case-records/12").
func (b *ConfigBuilder) Build(ctx context.Context, kind string, id int64, title, mode, resourcePath string) map[string]any {
	return map[string]any{
		"documentType": "word",
		"document": map[string]any{
			"fileType": "docx",
			"key":      b.DocumentKey(ctx, kind, id),
			"title":    title,
			"url":      b.publicBaseURL + resourcePath + "/download",
		},
		"editorConfig": map[string]any{
			"mode":        mode,
			"callbackUrl": b.publicBaseURL + resourcePath + "/callback",
		},
	}
}

// DocumentKey returns the current cache key for a document, minting and
// caching a fresh one on miss. The editor caches documents by key, so the
// key must stay stable between saves and change with every new version.
func (b *ConfigBuilder) DocumentKey(ctx context.Context, kind string, id int64) string {
	cacheKey := keyCacheName(kind, id)
	if b.kv != nil {
		if v, err := b.kv.Get(ctx, cacheKey); err == nil && v != "" {
			return v
		}
	}
	return b.mintKey(ctx, kind, id)
}

// BumpDocumentKey invalidates the editor's cached copy after a content
// change by minting a new key.
func (b *ConfigBuilder) BumpDocumentKey(ctx context.Context, kind string, id int64) {
	b.mintKey(ctx, kind, id)
}

func (b *ConfigBuilder) mintKey(ctx context.Context, kind string, id int64) string {
	key := fmt.Sprintf("%s_%d_%s", strings.ToUpper(kind), id, uuid.NewString()[:8])
	if b.kv != nil {
		if err := b.kv.Set(ctx, keyCacheName(kind, id), key, 30*24*time.Hour); err != nil {
			// Without the cache every config request mints a new key; the
			// editor just re-downloads more often.
			b.logger.Warn("failed to cache editor document key", zap.Error(err))
		}
	}
	return key
}

func keyCacheName(kind string, id int64) string {
	return fmt.Sprintf("editor:key:%s:%d", kind, id)
}
