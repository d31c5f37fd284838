package apiclient

import (
	"context"
	"net/http"

	"github.com/octabyte/emaar-web/models"
)

// The location endpoints form a cascade: governorate, district,
// sub-district, neighborhood.

func (c *Client) Governorates(ctx context.Context) ([]models.Governorate, error) {
	return listLocations[models.Governorate](ctx, c, "Governorates", "/governorates")
}

func (c *Client) Districts(ctx context.Context, governorateID uint64) ([]models.District, error) {
	return listLocations[models.District](ctx, c, "Districts", idPath("/governorates", governorateID, "/districts"))
}

func (c *Client) SubDistricts(ctx context.Context, districtID uint64) ([]models.SubDistrict, error) {
	return listLocations[models.SubDistrict](ctx, c, "SubDistricts", idPath("/districts", districtID, "/sub-districts"))
}

func (c *Client) Neighborhoods(ctx context.Context, subDistrictID uint64) ([]models.Neighborhood, error) {
	return listLocations[models.Neighborhood](ctx, c, "Neighborhoods", idPath("/sub-districts", subDistrictID, "/neighborhoods"))
}

func listLocations[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	items, err := decodeData[[]T]("locations", body)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
