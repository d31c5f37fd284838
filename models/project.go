package models

import (
	"time"

	"github.com/octabyte/emaar-web/enums"
)

type Project struct {
	ID           uint64              `json:"id"`
	Name         Localized           `json:"name"`
	Description  Localized           `json:"description"`
	Status       enums.ProjectStatus `json:"status"`
	TargetAmount float64             `json:"target_amount"`
	RaisedAmount float64             `json:"raised_amount"`
	Currency     string              `json:"currency"`
	ImageURL     string              `json:"image_url,omitempty"`
	MosqueID     uint64              `json:"mosque_id,omitempty"`
	Mosque       *Mosque             `json:"mosque,omitempty"`
	DonorsCount  int                 `json:"donors_count"`
	StartDate    *time.Time          `json:"start_date,omitempty"`
	EndDate      *time.Time          `json:"end_date,omitempty"`
}
