package models

// DynamicType is the upstream card type tag. The values are the ones
// the space_history API declares in desc.type.
type DynamicType int64

const (
	TypeUnknown     DynamicType = -1   // 未知类型
	TypeRepost      DynamicType = 1    // 转发动态
	TypeImage       DynamicType = 2    // 图片动态 (旧版)
	TypeText        DynamicType = 4    // 文字动态 (旧版)
	TypeVideo       DynamicType = 8    // 视频投稿
	TypeLegacyVideo DynamicType = 16   // 小视频 (旧版)
	TypeMusic       DynamicType = 32   // 音乐投稿
	TypeArticle     DynamicType = 64   // 专栏文章
	TypeAudio       DynamicType = 256  // 音频 / 广播剧
	TypeSeason      DynamicType = 512  // 番剧更新
	TypeSketch      DynamicType = 2048 // B站活动/分享卡片
)

// Label returns a short display name for the dynamic type.
func (t DynamicType) Label() string {
	switch t {
	case TypeRepost:
		return "转发动态"
	case TypeImage:
		return "图片动态"
	case TypeText:
		return "文字动态"
	case TypeVideo:
		return "视频投稿"
	case TypeLegacyVideo:
		return "小视频"
	case TypeMusic:
		return "音乐投稿"
	case TypeArticle:
		return "专栏文章"
	case TypeAudio:
		return "音频更新"
	case TypeSeason:
		return "番剧更新"
	case TypeSketch:
		return "分享动态"
	default:
		return "动态"
	}
}

// FeedItem is one normalized dynamic, regardless of which card type it
// came from. Content carries the primary text body (empty for types
// without one), Origin carries a title or repost summary depending on
// the type, and OriginID is non-zero only for reposts, pointing at the
// dynamic being reposted.
type FeedItem struct {
	ID          int64
	Type        DynamicType
	URL         string
	AuthorName  string
	Content     string
	Origin      string
	OriginID    int64
	PictureURLs []string
}
