package models

import (
	"io"
	"time"

	"github.com/octabyte/emaar-web/enums"
)

type Donation struct {
	ID         uint64               `json:"id"`
	ProjectID  uint64               `json:"project_id"`
	Project    *Project             `json:"project,omitempty"`
	DonorName  string               `json:"donor_name"`
	DonorPhone string               `json:"donor_phone,omitempty"`
	Amount     float64              `json:"amount"`
	Currency   string               `json:"currency"`
	Status     enums.DonationStatus `json:"status"`
	ReceiptURL string               `json:"receipt_url,omitempty"`
	Notes      string               `json:"notes,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// DonationInput is a donation form submission. Receipt is streamed to the
// API as a multipart file part.
type DonationInput struct {
	ProjectID   uint64    `form:"project_id" validate:"required"`
	DonorName   string    `form:"donor_name" validate:"required,max=120"`
	DonorPhone  string    `form:"donor_phone" validate:"omitempty,max=32"`
	Amount      float64   `form:"amount" validate:"required,gt=0"`
	Currency    string    `form:"currency" validate:"required,len=3"`
	Notes       string    `form:"notes" validate:"max=1000"`
	ReceiptName string    `form:"-"`
	Receipt     io.Reader `form:"-"`
}
