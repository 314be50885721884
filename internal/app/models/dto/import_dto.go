package dto

// ImportResult summarizes one CSV upload. Processed counts rows that
// reached the store; Total counts every row the parser emitted, so a
// partial success is always observable. Errors is capped by the
// dispatcher, ten entries by default.
type ImportResult struct {
	Success   bool     `json:"success"`
	Processed int      `json:"processed"`
	Total     int      `json:"total"`
	Errors    []string `json:"errors"`
}

// ImportTemplate describes the expected sheet layout for one upload
// type, served by GET /imports/template.
type ImportTemplate struct {
	Type     string   `json:"type"`
	Required []string `json:"required"`
	Header   string   `json:"header"`
}
