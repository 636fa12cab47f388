package journal

import (
	"context"

	"github.com/tripjournal/tripjournal-go/domain"
)

// MediaUpload carries an attachment for an event: the owning event id, the
// raw bytes, and an optional caption. The bytes cross the wire as base64
// text inside the JSON body (encoding/json handles []byte that way).
type MediaUpload struct {
	EventID int     `json:"event_id"`
	Data    []byte  `json:"base64_data"`
	Caption *string `json:"caption,omitempty"`
}

// UploadMedia uploads an attachment and returns the persisted record, which
// carries a URL instead of the bytes.
func (c *Client) UploadMedia(ctx context.Context, upload MediaUpload) (domain.Media, error) {
	var media domain.Media
	if err := c.do(ctx, opUploadMedia, 0, upload, &media); err != nil {
		return domain.Media{}, err
	}
	return media, nil
}

// DeleteMedia deletes an attachment by id.
func (c *Client) DeleteMedia(ctx context.Context, id int) error {
	return c.do(ctx, opDeleteMedia, id, nil, nil)
}
