package dto

// ExportRequest tunes a dashboard bundle export
type ExportRequest struct {
	Upload bool `json:"upload"`
}

// ExportResponse reports where the bundle landed
type ExportResponse struct {
	Message  string   `json:"message"`
	Dir      string   `json:"dir"`
	Files    []string `json:"files"`
	Uploaded bool     `json:"uploaded"`
}
