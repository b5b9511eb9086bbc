package request

// SetDataSourceRequest represents the request body for selecting the
// estimate data source.
type SetDataSourceRequest struct {
	Source string `json:"source"`
}
