package apimodels

type QueryResponse struct {
	// The answer text; failures are reported here as well
	Response string `json:"response"`
}

type UploadResponse struct {
	// Name of the first column of the uploaded dataset
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
