package models

type Mosque struct {
	ID             uint64        `json:"id"`
	Name           Localized     `json:"name"`
	Description    Localized     `json:"description"`
	Latitude       float64       `json:"latitude"`
	Longitude      float64       `json:"longitude"`
	DamageLevel    string        `json:"damage_level,omitempty"`
	Status         string        `json:"status,omitempty"`
	GovernorateID  uint64        `json:"governorate_id,omitempty"`
	Governorate    *Governorate  `json:"governorate,omitempty"`
	DistrictID     uint64        `json:"district_id,omitempty"`
	SubDistrictID  uint64        `json:"sub_district_id,omitempty"`
	NeighborhoodID uint64        `json:"neighborhood_id,omitempty"`
	Media          []MosqueMedia `json:"media,omitempty"`
}

type MosqueMedia struct {
	ID   uint64 `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}
