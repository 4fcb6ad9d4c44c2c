package course

import "time"

// Review is a course rating left by an enrolled student.
type Review struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Review    string    `json:"review" gorm:"size:100;not null"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	OwnerID   uint      `json:"owner_id" gorm:"index;not null"`
	CourseID  uint      `json:"course_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerUserID satisfies the owner-only access policy.
func (r Review) OwnerUserID() uint { return r.OwnerID }
