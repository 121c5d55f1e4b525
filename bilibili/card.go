package bilibili

import (
	"encoding/json"
	"fmt"

	"bili-bot/models"
)

// payload is a card's inner document after the second decode step.
// Field access goes through the helpers below so a shape mismatch
// surfaces as an error instead of a panic.
type payload map[string]any

func decodePayload(raw string) (payload, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: inner payload: %v", ErrMalformedCard, err)
	}
	return p, nil
}

// str walks nested objects by key and returns the string at the end of
// the path.
func (p payload) str(keys ...string) (string, error) {
	var cur any = map[string]any(p)
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %q is not an object", ErrMalformedCard, key)
		}
		cur, ok = m[key]
		if !ok {
			return "", fmt.Errorf("%w: missing field %q", ErrMalformedCard, key)
		}
	}
	s, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string", ErrMalformedCard, keys[len(keys)-1])
	}
	return s, nil
}

// pictureURLs collects img_src from the item.pictures array, skipping
// entries whose URL is structurally missing rather than failing the
// whole list.
func (p payload) pictureURLs() ([]string, error) {
	item, ok := p["item"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing item block", ErrMalformedCard)
	}
	pics, ok := item["pictures"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing pictures list", ErrMalformedCard)
	}
	var urls []string
	for _, entry := range pics {
		info, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		src, ok := info["img_src"].(string)
		if !ok {
			continue
		}
		urls = append(urls, src)
	}
	return urls, nil
}

// extractor pulls one string field out of a payload.
type extractor func(payload) (string, error)

func field(keys ...string) extractor {
	return func(p payload) (string, error) { return p.str(keys...) }
}

// firstOf tries extractors in order and returns the first that
// succeeds.
func firstOf(candidates ...extractor) extractor {
	return func(p payload) (string, error) {
		var err error
		for _, candidate := range candidates {
			var s string
			if s, err = candidate(p); err == nil {
				return s, nil
			}
		}
		return "", err
	}
}

// joined concatenates two extracted fields with a separator.
func joined(left extractor, sep string, right extractor) extractor {
	return func(p payload) (string, error) {
		l, err := left(p)
		if err != nil {
			return "", err
		}
		r, err := right(p)
		if err != nil {
			return "", err
		}
		return l + sep + r, nil
	}
}

// rule maps one card type to its field extraction. Adding support for
// a new upstream type means adding a row here, not a new branch.
type rule struct {
	content  extractor
	origin   extractor
	pictures bool
}

var cardRules = map[models.DynamicType]rule{
	models.TypeRepost:      {content: field("item", "content")},
	models.TypeImage:       {content: field("item", "description"), pictures: true},
	models.TypeText:        {content: field("item", "content")},
	models.TypeVideo:       {content: field("dynamic"), origin: field("title")},
	models.TypeLegacyVideo: {content: firstOf(field("item", "description"), field("item", "desc"))},
	models.TypeMusic:       {origin: field("title")},
	models.TypeArticle:     {content: field("summary"), origin: field("title")},
	models.TypeAudio:       {content: field("intro"), origin: field("title")},
	models.TypeSeason:      {origin: field("apiSeasonInfo", "title")},
	models.TypeSketch:      {content: field("vest", "content"), origin: joined(field("sketch", "title"), " - ", field("sketch", "desc_text"))},
}

// NormalizeCard maps one raw card to a FeedItem. It is total: unknown
// type tags and structural mismatches degrade that one item to the
// unknown shape (type -1, author "Unknown") instead of failing, so a
// bad card never aborts its batch.
func NormalizeCard(card RawCard) models.FeedItem {
	degraded := models.FeedItem{
		ID:         card.Desc.DynamicID,
		Type:       models.TypeUnknown,
		URL:        DynamicURL(card.Desc.DynamicID),
		AuthorName: "Unknown",
	}

	t := models.DynamicType(card.Desc.Type)
	r, ok := cardRules[t]
	if !ok {
		return degraded
	}
	p, err := decodePayload(card.Card)
	if err != nil {
		return degraded
	}

	item := models.FeedItem{
		ID:         card.Desc.DynamicID,
		Type:       t,
		URL:        DynamicURL(card.Desc.DynamicID),
		AuthorName: card.Desc.AuthorName(),
	}
	if r.content != nil {
		if item.Content, err = r.content(p); err != nil {
			return degraded
		}
	}
	if r.origin != nil {
		if item.Origin, err = r.origin(p); err != nil {
			return degraded
		}
	}
	if r.pictures {
		if item.PictureURLs, err = p.pictureURLs(); err != nil {
			return degraded
		}
	}
	if t == models.TypeRepost {
		// The origin's content is the resolver's job; only the
		// reference is recorded here.
		if card.Desc.Origin == nil {
			return degraded
		}
		item.OriginID = card.Desc.Origin.DynamicID
	}
	return item
}
