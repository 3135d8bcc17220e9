package models

// Course represents a course students can leave feedback on.
type Course struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Semester    string `json:"semester"`
	Link        string `json:"link,omitempty"`
	CourseType  string `json:"courseType"`
}
