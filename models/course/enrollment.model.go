package course

import "time"

// Enrollment records one student's registration in one course. At most
// one row may exist per (student, course) pair; the composite unique
// index backs the existence check in the enrollment ledger.
type Enrollment struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	EnrollmentNo string    `json:"enrollment_no" gorm:"size:12;uniqueIndex;not null"`
	StudentID    uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	CourseID     uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	EnrolledAt   time.Time `json:"enrolled_at" gorm:"autoCreateTime"`
}
