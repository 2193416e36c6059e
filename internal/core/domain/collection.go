package domain

// Collection describes a vector collection hosted by the grounding
// service. Each uploaded document lives in its own collection.
// Collections are remote state; the facade never persists them.
type Collection struct {
	// ID is the identifier assigned by the grounding service.
	ID string `json:"id"`

	// Title is the human-readable name derived from the uploaded file.
	Title string `json:"title"`
}
