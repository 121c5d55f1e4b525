package bilibili

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RawCard is one undecoded entry from the history feed. Card holds the
// type-specific payload as a JSON-encoded string which needs a second
// decode step; Desc is the typed envelope around it.
type RawCard struct {
	Desc CardDesc `json:"desc"`
	Card string   `json:"card"`
}

// CardDesc is the typed part of a card: its type tag, id, author and,
// for reposts, the descriptor of the origin dynamic.
type CardDesc struct {
	Type        int64        `json:"type"`
	DynamicID   int64        `json:"dynamic_id"`
	Origin      *OriginDesc  `json:"origin"`
	UserProfile *UserProfile `json:"user_profile"`
}

// OriginDesc points at the dynamic a repost re-shares.
type OriginDesc struct {
	DynamicID int64 `json:"dynamic_id"`
}

// UserProfile nests the author info the way the API returns it.
type UserProfile struct {
	Info UserProfileInfo `json:"info"`
}

type UserProfileInfo struct {
	Name string `json:"uname"`
}

// AuthorName returns the card author's display name, or "" when the
// profile block is absent.
func (d CardDesc) AuthorName() string {
	if d.UserProfile == nil {
		return ""
	}
	return d.UserProfile.Info.Name
}

type historyResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *struct {
		Cards []RawCard `json:"cards"`
	} `json:"data"`
}

// FetchHistory pulls the first page of a tracked account's dynamic
// feed and returns the raw cards, most recent first. The visitor uid
// is passed through only when configured. A response without a data
// block is reported as ErrUpstreamRejected with the upstream message.
func (c *Client) FetchHistory(ctx context.Context, uid int64) ([]RawCard, error) {
	params := url.Values{}
	if c.cred.VisitorUID != 0 {
		params.Set("visitor_uid", strconv.FormatInt(c.cred.VisitorUID, 10))
	}
	params.Set("host_uid", strconv.FormatInt(uid, 10))
	params.Set("offset_dynamic_id", "0")
	params.Set("need_top", "0")
	params.Set("platform", "web")

	var resp historyResponse
	if err := c.getJSON(ctx, c.historyURL, params, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamRejected, resp.Message)
	}
	return resp.Data.Cards, nil
}
