package models

type Governorate struct {
	ID   uint64    `json:"id"`
	Name Localized `json:"name"`
}

type District struct {
	ID            uint64    `json:"id"`
	GovernorateID uint64    `json:"governorate_id"`
	Name          Localized `json:"name"`
}

type SubDistrict struct {
	ID         uint64    `json:"id"`
	DistrictID uint64    `json:"district_id"`
	Name       Localized `json:"name"`
}

type Neighborhood struct {
	ID            uint64    `json:"id"`
	SubDistrictID uint64    `json:"sub_district_id"`
	Name          Localized `json:"name"`
}
