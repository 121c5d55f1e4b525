package bilibili

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"bili-bot/models"
)

// OriginNotFoundText is the placeholder content of a degraded origin
// item when resolution fails.
const OriginNotFoundText = "动态不存在或已被删除"

// detailRules is the resolver's view of the type table: content only
// (the resolved origin has no origin of its own in this flow), no
// repost row since a repost cannot itself be a resolvable origin, and
// a title fallback for video cards whose dynamic text is empty.
var detailRules = map[models.DynamicType]rule{
	models.TypeImage:       {content: field("item", "description"), pictures: true},
	models.TypeText:        {content: field("item", "content")},
	models.TypeVideo:       {content: videoText},
	models.TypeLegacyVideo: {content: field("item", "description")},
	models.TypeMusic:       {content: field("title")},
	models.TypeArticle:     {content: field("summary")},
	models.TypeAudio:       {content: field("intro")},
	models.TypeSeason:      {content: field("apiSeasonInfo", "title")},
	models.TypeSketch:      {content: field("vest", "content")},
}

// videoText prefers the dynamic text and falls back to the video title
// when the text is empty.
func videoText(p payload) (string, error) {
	text, err := p.str("dynamic")
	if err != nil {
		return "", err
	}
	if text == "" {
		return p.str("title")
	}
	return text, nil
}

type detailResponse struct {
	Message string `json:"message"`
	Data    *struct {
		Card *RawCard `json:"card"`
	} `json:"data"`
}

// ResolveOrigin fetches and normalizes the single dynamic a repost
// points at. On any failure it returns a degraded placeholder item
// (type unknown, author "Unknown", fixed not-found content, the cause
// in Origin) together with an ErrOriginNotFound-tagged error; the
// caller decides whether to deliver the placeholder.
func (c *Client) ResolveOrigin(ctx context.Context, originID int64) (models.FeedItem, error) {
	fail := func(cause error) (models.FeedItem, error) {
		return models.FeedItem{
			ID:         originID,
			Type:       models.TypeUnknown,
			URL:        DynamicURL(originID),
			AuthorName: "Unknown",
			Content:    OriginNotFoundText,
			Origin:     cause.Error(),
		}, fmt.Errorf("%w: %v", ErrOriginNotFound, cause)
	}

	params := url.Values{}
	params.Set("dynamic_id", strconv.FormatInt(originID, 10))

	var resp detailResponse
	if err := c.getJSON(ctx, c.detailURL, params, &resp); err != nil {
		return fail(err)
	}
	if resp.Data == nil || resp.Data.Card == nil {
		return fail(fmt.Errorf("%w: %s", ErrUpstreamRejected, resp.Message))
	}

	card := *resp.Data.Card
	item := models.FeedItem{
		ID:         originID,
		Type:       models.DynamicType(card.Desc.Type),
		URL:        DynamicURL(originID),
		AuthorName: card.Desc.AuthorName(),
	}

	r, ok := detailRules[item.Type]
	if !ok {
		// An unhandled origin type still resolves; there is just no
		// text to show for it.
		return item, nil
	}
	p, err := decodePayload(card.Card)
	if err != nil {
		return fail(err)
	}
	if item.Content, err = r.content(p); err != nil {
		return fail(err)
	}
	if r.pictures {
		if item.PictureURLs, err = p.pictureURLs(); err != nil {
			return fail(err)
		}
	}
	return item, nil
}
