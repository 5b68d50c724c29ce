package entity

type TranscriptionJob struct {
	Name         string `json:"name"`
	MediaURI     string `json:"media_uri"`
	MediaFormat  string `json:"media_format"`
	LanguageCode string `json:"language_code"`
	OutputBucket string `json:"output_bucket"`
}

type TranscriptionStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
