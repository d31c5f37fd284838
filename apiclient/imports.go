package apiclient

import (
	"context"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/octabyte/emaar-web/models"
)

// ImportMosques uploads a spreadsheet. The API processes it asynchronously
// and returns the queued batch.
func (c *Client) ImportMosques(ctx context.Context, token, fileName string, file io.Reader) (models.ImportBatch, error) {
	body, err := c.do(ctx, call{
		op:     "ImportMosques",
		method: http.MethodPost,
		path:   "/mosques/import",
		token:  token,
		build: func(r *resty.Request) {
			r.SetFileReader("file", fileName, file)
		},
	})
	if err != nil {
		return models.ImportBatch{}, err
	}
	return decodeData[models.ImportBatch]("import", body)
}

func (c *Client) ListImports(ctx context.Context, token string, q models.ListQuery) (models.Envelope[[]models.ImportBatch], error) {
	body, err := c.do(ctx, call{
		op:     "ListImports",
		method: http.MethodGet,
		path:   "/mosques/imports",
		token:  token,
		build: func(r *resty.Request) {
			r.SetQueryParams(queryParams(q))
		},
	})
	if err != nil {
		return models.Envelope[[]models.ImportBatch]{}, err
	}
	return decodeList[models.ImportBatch]("imports", body)
}
