package voicenote

// TextRequest carries typed text to analyze
type TextRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
}

// ListRequest represents the query for listing voice notes
type ListRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}
