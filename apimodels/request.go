package apimodels

type QueryRequest struct {
	// Prompt is the natural language question about the uploaded dataset
	Prompt string `json:"prompt"`
}
