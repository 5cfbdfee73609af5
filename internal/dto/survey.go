package dto

// SurveyStats is the aggregate-count view over the feed.
type SurveyStats struct {
	TotalSurveys       int `json:"totalSurveys"`
	DistinctCategories int `json:"distinctCategories"`
	DistinctChartTypes int `json:"distinctChartTypes"`
}

type ReportResponse struct {
	Report string `json:"report"`
	Cached bool   `json:"cached"`
}

// ExportRequest carries the client-rendered chart snapshot, if any, as a
// base64 PNG. The chart is drawn on-device, so the backend cannot regenerate
// it.
type ExportRequest struct {
	ChartImage string `json:"chartImage,omitempty"`
}
