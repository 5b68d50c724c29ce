package entity

// LabelResult is the document written to the result store, one per image.
type LabelResult struct {
	ImageID    string   `json:"image_id" firestore:"image_id"`
	Categories []string `json:"categories" firestore:"categories"`
	Tags       []Tag    `json:"tags" firestore:"tags"`
}

type Tag struct {
	Name       string  `json:"name" firestore:"name"`
	Confidence float64 `json:"confidence" firestore:"confidence"`
}
