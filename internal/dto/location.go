package dto

type LocationDTO struct {
	ShelfID       string `json:"shelfId"`
	Code          string `json:"code"`
	Label         string `json:"label"`
	ZoneCode      string `json:"zoneCode"`
	ZoneName      string `json:"zoneName"`
	ChamberNumber int    `json:"chamberNumber"`
	ChamberName   string `json:"chamberName"`
	ShelfNumber   int    `json:"shelfNumber"`
}

type LocationsResponse struct {
	TraceID   string        `json:"traceId"`
	Locations []LocationDTO `json:"locations"`
}
