package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/models"
)

func (c *Client) ListDonations(ctx context.Context, token string, q models.ListQuery) (models.Envelope[[]models.Donation], error) {
	body, err := c.do(ctx, call{
		op:     "ListDonations",
		method: http.MethodGet,
		path:   "/donations",
		token:  token,
		build: func(r *resty.Request) {
			r.SetQueryParams(queryParams(q))
		},
	})
	if err != nil {
		return models.Envelope[[]models.Donation]{}, err
	}
	return decodeList[models.Donation]("donations", body)
}

// CreateDonation submits a public donation form. The receipt, when present,
// is streamed as the "receipt" file part.
func (c *Client) CreateDonation(ctx context.Context, in models.DonationInput) (models.Donation, error) {
	body, err := c.do(ctx, call{
		op:     "CreateDonation",
		method: http.MethodPost,
		path:   "/donations",
		build: func(r *resty.Request) {
			form := map[string]string{
				"project_id": strconv.FormatUint(in.ProjectID, 10),
				"donor_name": in.DonorName,
				"amount":     strconv.FormatFloat(in.Amount, 'f', -1, 64),
				"currency":   in.Currency,
			}
			if in.DonorPhone != "" {
				form["donor_phone"] = in.DonorPhone
			}
			if in.Notes != "" {
				form["notes"] = in.Notes
			}
			r.SetMultipartFormData(form)
			if in.Receipt != nil {
				r.SetFileReader("receipt", in.ReceiptName, in.Receipt)
			}
		},
	})
	if err != nil {
		return models.Donation{}, err
	}
	return decodeData[models.Donation]("donation", body)
}

type statusUpdate struct {
	Status enums.DonationStatus `json:"status"`
	Note   string               `json:"note,omitempty"`
}

// UpdateDonationStatus records a staff review decision.
func (c *Client) UpdateDonationStatus(ctx context.Context, token string, id uint64, status enums.DonationStatus, note string) (models.Donation, error) {
	body, err := c.do(ctx, call{
		op:     "UpdateDonationStatus",
		method: http.MethodPatch,
		path:   idPath("/donations", id, "/status"),
		token:  token,
		build: func(r *resty.Request) {
			r.SetBody(statusUpdate{Status: status, Note: note})
		},
	})
	if err != nil {
		return models.Donation{}, err
	}
	return decodeData[models.Donation]("donation", body)
}
