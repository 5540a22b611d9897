package editor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labdoc-data/internal/store"
)

func TestBuildConfigShape(t *testing.T) {
	b := NewConfigBuilder(store.NewMemoryKV(), "http://lab.example.com/", zap.NewNop())

	cfg := b.Build(context.Background(), "case", 12, "Informe Pericial 12", "edit", "/api/case-records/12")

	assert.Equal(t, "word", cfg["documentType"])
	doc := cfg["document"].(map[string]any)
	assert.Equal(t, "docx", doc["fileType"])
	assert.Equal(t, "Informe Pericial 12", doc["title"])
	assert.Equal(t, "http://lab.example.com/api/case-records/12/download", doc["url"])
	ec := cfg["editorConfig"].(map[string]any)
	assert.Equal(t, "edit", ec["mode"])
	assert.Equal(t, "http://lab.example.com/api/case-records/12/callback", ec["callbackUrl"])
}

func TestDocumentKeyStableUntilBumped(t *testing.T) {
	b := NewConfigBuilder(store.NewMemoryKV(), "http://lab", zap.NewNop())
	ctx := context.Background()

	first := b.DocumentKey(ctx, "case", 7)
	require.True(t, strings.HasPrefix(first, "CASE_7_"), first)
	assert.Equal(t, first, b.DocumentKey(ctx, "case", 7))

	b.BumpDocumentKey(ctx, "case", 7)
	second := b.DocumentKey(ctx, "case", 7)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "CASE_7_"))
}

func TestDocumentKeyPerDocument(t *testing.T) {
	b := NewConfigBuilder(store.NewMemoryKV(), "http://lab", zap.NewNop())
	ctx := context.Background()

	assert.NotEqual(t, b.DocumentKey(ctx, "case", 1), b.DocumentKey(ctx, "case", 2))
	assert.NotEqual(t, b.DocumentKey(ctx, "case", 1), b.DocumentKey(ctx, "dosage_memo", 1))
}

func TestDocumentKeyWithoutCacheStillMints(t *testing.T) {
	b := NewConfigBuilder(nil, "http://lab", zap.NewNop())
	key := b.DocumentKey(context.Background(), "case", 3)
	assert.True(t, strings.HasPrefix(key, "CASE_3_"))
}
