package apiclient

import (
	"context"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/octabyte/emaar-web/models"
)

// ListMosques supports the "governorate_id" filter plus free text search.
func (c *Client) ListMosques(ctx context.Context, token string, q models.ListQuery) (models.Envelope[[]models.Mosque], error) {
	body, err := c.do(ctx, call{
		op:     "ListMosques",
		method: http.MethodGet,
		path:   "/mosques",
		token:  token,
		build: func(r *resty.Request) {
			r.SetQueryParams(queryParams(q))
		},
	})
	if err != nil {
		return models.Envelope[[]models.Mosque]{}, err
	}
	return decodeList[models.Mosque]("mosques", body)
}

func (c *Client) GetMosque(ctx context.Context, id uint64) (models.Mosque, error) {
	body, err := c.do(ctx, call{
		op:     "GetMosque",
		method: http.MethodGet,
		path:   idPath("/mosques", id, ""),
	})
	if err != nil {
		return models.Mosque{}, err
	}
	return decodeData[models.Mosque]("mosque", body)
}

// UploadMosqueMedia attaches a photo or document to a mosque record.
func (c *Client) UploadMosqueMedia(ctx context.Context, token string, mosqueID uint64, fileName string, file io.Reader) (models.MosqueMedia, error) {
	body, err := c.do(ctx, call{
		op:     "UploadMosqueMedia",
		method: http.MethodPost,
		path:   idPath("/mosques", mosqueID, "/media"),
		token:  token,
		build: func(r *resty.Request) {
			r.SetFileReader("file", fileName, file)
		},
	})
	if err != nil {
		return models.MosqueMedia{}, err
	}
	return decodeData[models.MosqueMedia]("media", body)
}
