package models

import (
	"time"

	"github.com/octabyte/emaar-web/enums"
)

// ImportBatch describes one spreadsheet import run on the API side.
type ImportBatch struct {
	ID           uint64             `json:"id"`
	FileName     string             `json:"file_name"`
	Status       enums.ImportStatus `json:"status"`
	TotalRows    int                `json:"total_rows"`
	ImportedRows int                `json:"imported_rows"`
	FailedRows   int                `json:"failed_rows"`
	Errors       []ImportRowError   `json:"errors,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
