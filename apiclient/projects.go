package apiclient

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/octabyte/emaar-web/models"
)

// ListProjects supports the "status" filter plus free text search.
func (c *Client) ListProjects(ctx context.Context, q models.ListQuery) (models.Envelope[[]models.Project], error) {
	body, err := c.do(ctx, call{
		op:     "ListProjects",
		method: http.MethodGet,
		path:   "/projects",
		build: func(r *resty.Request) {
			r.SetQueryParams(queryParams(q))
		},
	})
	if err != nil {
		return models.Envelope[[]models.Project]{}, err
	}
	return decodeList[models.Project]("projects", body)
}

func (c *Client) GetProject(ctx context.Context, id uint64) (models.Project, error) {
	body, err := c.do(ctx, call{
		op:     "GetProject",
		method: http.MethodGet,
		path:   idPath("/projects", id, ""),
	})
	if err != nil {
		return models.Project{}, err
	}
	return decodeData[models.Project]("project", body)
}
