package model

// Category groups events under a name and a display color
type Category struct {
	Name  string `json:"nombre"`
	Color string `json:"color"`
}

// CategoryRequest is the body of category create requests
type CategoryRequest struct {
	Name  string `json:"nombre"`
	Color string `json:"color"`
}
