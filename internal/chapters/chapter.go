package chapters

// Chapter is a titled time range. IDs are stable across persistence.
type Chapter struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Title     string  `json:"title"`
}

// Document is the persisted chapters file shape.
type Document struct {
	Chapters []Chapter `json:"chapters"`
}
