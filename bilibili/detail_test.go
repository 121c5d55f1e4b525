package bilibili

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bili-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detailServer serves a single-card detail response for every request.
func detailServer(t *testing.T, cardType int64, payload map[string]any) *httptest.Server {
	t.Helper()
	inner, err := json.Marshal(payload)
	require.NoError(t, err)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"data": map[string]any{
				"card": map[string]any{
					"desc": map[string]any{
						"type":         cardType,
						"dynamic_id":   500,
						"user_profile": map[string]any{"info": map[string]any{"uname": "原作者"}},
					},
					"card": string(inner),
				},
			},
		})
	}))
}

func TestResolveOrigin(t *testing.T) {
	tests := []struct {
		name        string
		cardType    int64
		payload     map[string]any
		wantContent string
	}{
		{
			name:        "text post",
			cardType:    4,
			payload:     map[string]any{"item": map[string]any{"content": "原动态内容"}},
			wantContent: "原动态内容",
		},
		{
			name:        "video with dynamic text",
			cardType:    8,
			payload:     map[string]any{"dynamic": "视频动态文案", "title": "视频标题"},
			wantContent: "视频动态文案",
		},
		{
			name:        "video falls back to title",
			cardType:    8,
			payload:     map[string]any{"dynamic": "", "title": "视频标题"},
			wantContent: "视频标题",
		},
		{
			name:        "article",
			cardType:    64,
			payload:     map[string]any{"summary": "摘要"},
			wantContent: "摘要",
		},
		{
			name:        "season",
			cardType:    512,
			payload:     map[string]any{"apiSeasonInfo": map[string]any{"title": "番剧"}},
			wantContent: "番剧",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := detailServer(t, tt.cardType, tt.payload)
			defer ts.Close()

			item, err := newTestClient(ts.URL, Credential{}).ResolveOrigin(context.Background(), 500)
			require.NoError(t, err)
			assert.Equal(t, int64(500), item.ID)
			assert.Equal(t, models.DynamicType(tt.cardType), item.Type)
			assert.Equal(t, "原作者", item.AuthorName)
			assert.Equal(t, tt.wantContent, item.Content)
			assert.Equal(t, "https://t.bilibili.com/500", item.URL)
		})
	}
}

func TestResolveOriginCollectsPictures(t *testing.T) {
	ts := detailServer(t, 2, map[string]any{
		"item": map[string]any{
			"description": "图片原动态",
			"pictures": []any{
				map[string]any{"img_src": "https://i0.hdslb.com/1.jpg"},
				map[string]any{"height": 42}, // url missing, skipped
				map[string]any{"img_src": "https://i0.hdslb.com/3.jpg"},
			},
		},
	})
	defer ts.Close()

	item, err := newTestClient(ts.URL, Credential{}).ResolveOrigin(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://i0.hdslb.com/1.jpg", "https://i0.hdslb.com/3.jpg"}, item.PictureURLs)
}

func TestResolveOriginUnhandledType(t *testing.T) {
	ts := detailServer(t, 1024, map[string]any{"anything": "x"})
	defer ts.Close()

	item, err := newTestClient(ts.URL, Credential{}).ResolveOrigin(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, models.DynamicType(1024), item.Type)
	assert.Equal(t, "原作者", item.AuthorName)
	assert.Empty(t, item.Content)
}

func TestResolveOriginFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	item, err := newTestClient(ts.URL, Credential{}).ResolveOrigin(context.Background(), 500)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOriginNotFound))

	// The degraded placeholder is still usable by the caller.
	assert.Equal(t, int64(500), item.ID)
	assert.Equal(t, models.TypeUnknown, item.Type)
	assert.Equal(t, "Unknown", item.AuthorName)
	assert.Equal(t, OriginNotFoundText, item.Content)
	assert.Contains(t, item.Origin, "FetchFailed")
}

func TestResolveOriginMissingData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 500207, "message": "dynamic deleted"})
	}))
	defer ts.Close()

	item, err := newTestClient(ts.URL, Credential{}).ResolveOrigin(context.Background(), 500)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOriginNotFound))
	assert.Contains(t, item.Origin, "UpstreamRejected")
	assert.Contains(t, item.Origin, "dynamic deleted")
}

func TestResolveOriginMalformedPayload(t *testing.T) {
	ts := detailServer(t, 4, map[string]any{"item": map[string]any{}})
	defer ts.Close()

	item, err := newTestClient(ts.URL, Credential{}).ResolveOrigin(context.Background(), 500)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOriginNotFound))
	assert.Equal(t, OriginNotFoundText, item.Content)
	assert.Contains(t, item.Origin, "MalformedCard")
}
