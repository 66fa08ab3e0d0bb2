package entity

import "time"

type Student struct {
	EnrollNumber  string    `db:"enroll_number"`
	FullName      string    `db:"full_name"`
	Email         string    `db:"email"`
	Password      string    `db:"password"`
	Batch         string    `db:"batch"`
	Course        string    `db:"course"`
	ImageFilename string    `db:"image_filename"`
	CreatedAt     time.Time `db:"created_at"`
}

// HasPhoto reports whether a photo was stored for the student at signup.
func (s Student) HasPhoto() bool {
	return s.ImageFilename != ""
}
