package attendance

const ImageField = "image"

// SearchRequest fields are recorded with the search but do not narrow the gallery.
type SearchRequest struct {
	Date   string `form:"date"`
	Batch  string `form:"batch"`
	Course string `form:"course"`
}

// SearchResponse lists the enroll numbers found in the photo, in enrollment order.
type SearchResponse struct {
	Message []string `json:"message"`
}

type LiveSearchError struct {
	Error string `json:"error"`
}
