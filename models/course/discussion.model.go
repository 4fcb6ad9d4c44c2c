package course

import "time"

// Discussion is a student comment under a lecture.
type Discussion struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	Discussion string    `json:"discussion" gorm:"size:100"`
	LectureID  uint      `json:"lecture_id" gorm:"index;not null"`
	StudentID  uint      `json:"student_id" gorm:"index;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
