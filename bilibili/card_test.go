package bilibili

import (
	"encoding/json"
	"testing"

	"bili-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeCard builds a RawCard with the inner payload JSON-encoded the
// way the API nests it.
func makeCard(t *testing.T, cardType, dynamicID int64, payload map[string]any) RawCard {
	t.Helper()
	inner, err := json.Marshal(payload)
	require.NoError(t, err)
	return RawCard{
		Desc: CardDesc{
			Type:      cardType,
			DynamicID: dynamicID,
			UserProfile: &UserProfile{
				Info: UserProfileInfo{Name: "测试UP主"},
			},
		},
		Card: string(inner),
	}
}

func TestNormalizeCardKnownTypes(t *testing.T) {
	tests := []struct {
		name        string
		cardType    int64
		payload     map[string]any
		wantContent string
		wantOrigin  string
	}{
		{
			name:        "text post",
			cardType:    4,
			payload:     map[string]any{"item": map[string]any{"content": "日常动态"}},
			wantContent: "日常动态",
		},
		{
			name:        "image post",
			cardType:    2,
			payload:     map[string]any{"item": map[string]any{"description": "新图", "pictures": []any{map[string]any{"img_src": "https://i0.hdslb.com/a.jpg"}}}},
			wantContent: "新图",
		},
		{
			name:        "video",
			cardType:    8,
			payload:     map[string]any{"dynamic": "投稿了新视频", "title": "视频标题"},
			wantContent: "投稿了新视频",
			wantOrigin:  "视频标题",
		},
		{
			name:        "legacy video with description",
			cardType:    16,
			payload:     map[string]any{"item": map[string]any{"description": "小视频描述"}},
			wantContent: "小视频描述",
		},
		{
			name:        "legacy video falls back to desc",
			cardType:    16,
			payload:     map[string]any{"item": map[string]any{"desc": "备用描述"}},
			wantContent: "备用描述",
		},
		{
			name:       "music",
			cardType:   32,
			payload:    map[string]any{"title": "新歌"},
			wantOrigin: "新歌",
		},
		{
			name:        "article",
			cardType:    64,
			payload:     map[string]any{"summary": "文章摘要", "title": "文章标题"},
			wantContent: "文章摘要",
			wantOrigin:  "文章标题",
		},
		{
			name:        "audio drama",
			cardType:    256,
			payload:     map[string]any{"intro": "广播剧简介", "title": "广播剧标题"},
			wantContent: "广播剧简介",
			wantOrigin:  "广播剧标题",
		},
		{
			name:       "season update",
			cardType:   512,
			payload:    map[string]any{"apiSeasonInfo": map[string]any{"title": "番剧标题"}},
			wantOrigin: "番剧标题",
		},
		{
			name:        "sketch",
			cardType:    2048,
			payload:     map[string]any{"vest": map[string]any{"content": "活动内容"}, "sketch": map[string]any{"title": "活动", "desc_text": "活动描述"}},
			wantContent: "活动内容",
			wantOrigin:  "活动 - 活动描述",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NormalizeCard(makeCard(t, tt.cardType, 123456, tt.payload))
			assert.Equal(t, int64(123456), item.ID)
			assert.Equal(t, models.DynamicType(tt.cardType), item.Type)
			assert.Equal(t, "https://t.bilibili.com/123456", item.URL)
			assert.Equal(t, "测试UP主", item.AuthorName)
			assert.Equal(t, tt.wantContent, item.Content)
			assert.Equal(t, tt.wantOrigin, item.Origin)
		})
	}
}

func TestNormalizeCardRepost(t *testing.T) {
	card := makeCard(t, 1, 777, map[string]any{"item": map[string]any{"content": "转发评论"}})
	card.Desc.Origin = &OriginDesc{DynamicID: 500}

	item := NormalizeCard(card)
	assert.Equal(t, models.TypeRepost, item.Type)
	assert.Equal(t, "转发评论", item.Content)
	// Only the reference is recorded; resolving is the caller's call.
	assert.Equal(t, int64(500), item.OriginID)
	assert.Empty(t, item.Origin)
}

func TestNormalizeCardRepostWithoutOriginDescriptor(t *testing.T) {
	card := makeCard(t, 1, 777, map[string]any{"item": map[string]any{"content": "转发评论"}})

	item := NormalizeCard(card)
	assert.Equal(t, models.TypeUnknown, item.Type)
	assert.Equal(t, "Unknown", item.AuthorName)
}

func TestNormalizeCardUnknownType(t *testing.T) {
	item := NormalizeCard(makeCard(t, 1024, 42, map[string]any{"whatever": "x"}))

	assert.Equal(t, models.TypeUnknown, item.Type)
	assert.Equal(t, "Unknown", item.AuthorName)
	assert.Empty(t, item.Content)
	assert.Empty(t, item.Origin)
	assert.Equal(t, "https://t.bilibili.com/42", item.URL)
}

func TestNormalizeCardMalformedPayload(t *testing.T) {
	t.Run("inner payload not json", func(t *testing.T) {
		card := RawCard{
			Desc: CardDesc{Type: 4, DynamicID: 9},
			Card: "{not json",
		}
		item := NormalizeCard(card)
		assert.Equal(t, models.TypeUnknown, item.Type)
		assert.Equal(t, "Unknown", item.AuthorName)
	})

	t.Run("missing required field", func(t *testing.T) {
		item := NormalizeCard(makeCard(t, 4, 9, map[string]any{"item": map[string]any{}}))
		assert.Equal(t, models.TypeUnknown, item.Type)
		assert.Equal(t, "Unknown", item.AuthorName)
	})

	t.Run("field of wrong kind", func(t *testing.T) {
		item := NormalizeCard(makeCard(t, 4, 9, map[string]any{"item": map[string]any{"content": 5}}))
		assert.Equal(t, models.TypeUnknown, item.Type)
	})

	t.Run("siblings unaffected", func(t *testing.T) {
		bad := NormalizeCard(makeCard(t, 4, 1, map[string]any{}))
		good := NormalizeCard(makeCard(t, 4, 2, map[string]any{"item": map[string]any{"content": "ok"}}))
		assert.Equal(t, models.TypeUnknown, bad.Type)
		assert.Equal(t, models.TypeText, good.Type)
		assert.Equal(t, "ok", good.Content)
	})
}

func TestNormalizeCardPictures(t *testing.T) {
	payload := map[string]any{
		"item": map[string]any{
			"description": "三张图",
			"pictures": []any{
				map[string]any{"img_src": "https://i0.hdslb.com/1.jpg"},
				map[string]any{"width": 100}, // url missing, skipped
				map[string]any{"img_src": "https://i0.hdslb.com/3.jpg"},
			},
		},
	}

	item := NormalizeCard(makeCard(t, 2, 11, payload))
	require.Equal(t, models.TypeImage, item.Type)
	assert.Equal(t, []string{"https://i0.hdslb.com/1.jpg", "https://i0.hdslb.com/3.jpg"}, item.PictureURLs)
}

func TestDynamicURL(t *testing.T) {
	tests := []struct {
		id   int64
		want string
	}{
		{0, "https://t.bilibili.com/0"},
		{846180, "https://t.bilibili.com/846180"},
		{9223372036854775807, "https://t.bilibili.com/9223372036854775807"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DynamicURL(tt.id))
	}
}
