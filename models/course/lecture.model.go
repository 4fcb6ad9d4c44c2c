package course

import "time"

// Lecture belongs to exactly one course. Chapter is the ordering key;
// no two lectures in the same course may share a chapter number.
type Lecture struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"size:64;not null"`
	Description string    `json:"description" gorm:"size:256"`
	LectureURL  string    `json:"lecture_url" gorm:"size:256;not null"`
	Thumbnail   string    `json:"thumbnail" gorm:"size:256"`
	DurationSec int64     `json:"duration_sec" gorm:"default:0"`
	Chapter     int       `json:"chapter" gorm:"not null;uniqueIndex:idx_lectures_course_chapter"`
	CourseID    uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_lectures_course_chapter"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
