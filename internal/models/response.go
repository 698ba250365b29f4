package models

// APIResponse is the envelope wrapped around every successful response.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// APIErrorResponse is the envelope wrapped around every error response.
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

// Page is a paginated listing. HasNextPage is derived from the total so
// clients never have to guess whether another fetch is worthwhile.
type Page struct {
	Docs        any  `json:"docs"`
	TotalDocs   int  `json:"totalDocs"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
}

func NewPage(docs any, total, page, limit int) Page {
	return Page{
		Docs:        docs,
		TotalDocs:   total,
		Page:        page,
		Limit:       limit,
		HasNextPage: page*limit < total,
	}
}
