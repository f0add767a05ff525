package model

// The past-paper catalog is a fixed hierarchy:
// faculty -> department -> level -> semester -> paper.

type Faculty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Department struct {
	ID        int64  `json:"id"`
	FacultyID int64  `json:"faculty_id"`
	Name      string `json:"name"`
}

type Paper struct {
	ID           int64  `json:"id"`
	DepartmentID int64  `json:"department_id"`
	Level        int    `json:"level"`
	Semester     int    `json:"semester"`
	CourseCode   string `json:"course_code"`
	Title        string `json:"title"`
	Year         int    `json:"year"`
	FileURL      string `json:"file_url"`
}
