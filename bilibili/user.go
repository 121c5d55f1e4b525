package bilibili

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type userInfoResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *struct {
		Name string `json:"name"`
	} `json:"data"`
}

// GetUserName looks up the display name of a bilibili account. Used
// for the message context line; callers fall back to the configured
// name when this fails.
func (c *Client) GetUserName(ctx context.Context, uid int64) (string, error) {
	params := url.Values{}
	params.Set("mid", strconv.FormatInt(uid, 10))

	var resp userInfoResponse
	if err := c.getJSON(ctx, c.userInfoURL, params, &resp); err != nil {
		return "", err
	}
	if resp.Data == nil || resp.Data.Name == "" {
		return "", fmt.Errorf("%w: %s", ErrUpstreamRejected, resp.Message)
	}
	return resp.Data.Name, nil
}
