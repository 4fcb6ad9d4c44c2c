package middleware

import (
	"edumart/models"
	courseModels "edumart/models/course"

	"gorm.io/gorm"
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Owned is implemented by per-user resources (payments, profile data)
// guarded by the generic owner-only rule.
type Owned interface {
	OwnerUserID() uint
}

// Policy decides whether a user may perform an action on a resource.
// Each resource kind gets its own variant so the rules stay centrally
// testable instead of being scattered per-endpoint.
type Policy interface {
	Allows(db *gorm.DB, action Action, user models.User, resource interface{}) bool
}

// TeacherOrReadOnly allows anyone to read but only teacher-role users
// to write. Used for course creation.
type TeacherOrReadOnly struct{}

func (TeacherOrReadOnly) Allows(db *gorm.DB, action Action, user models.User, resource interface{}) bool {
	if action == ActionRead {
		return true
	}
	return user.Role == models.RoleTeacher
}

// CourseOwnerOrReadOnly allows the course owner to mutate a course and
// anyone to read it.
type CourseOwnerOrReadOnly struct{}

func (CourseOwnerOrReadOnly) Allows(db *gorm.DB, action Action, user models.User, resource interface{}) bool {
	if action == ActionRead {
		return true
	}
	crs, ok := resource.(*courseModels.Course)
	if !ok {
		return false
	}
	return crs.OwnerID == user.ID
}

// LectureAccess guards lectures: the course owner or a listed
// instructor may mutate, and the owner, instructors or an enrolled
// student may read. The resource is the lecture's course.
type LectureAccess struct{}

func (LectureAccess) Allows(db *gorm.DB, action Action, user models.User, resource interface{}) bool {
	crs, ok := resource.(*courseModels.Course)
	if !ok {
		return false
	}
	if crs.OwnerID == user.ID || isInstructor(db, crs.ID, user.ID) {
		return true
	}
	if action == ActionRead {
		return isEnrolled(db, crs.ID, user.ID)
	}
	return false
}

// EnrolledStudentsOnly allows anyone to read but only students with an
// active enrollment for the course to write. Used for reviews.
type EnrolledStudentsOnly struct{}

func (EnrolledStudentsOnly) Allows(db *gorm.DB, action Action, user models.User, resource interface{}) bool {
	if action == ActionRead {
		return true
	}
	crs, ok := resource.(*courseModels.Course)
	if !ok {
		return false
	}
	return isEnrolled(db, crs.ID, user.ID)
}

// OwnerOnly allows a resource's owner to read or mutate it.
type OwnerOnly struct{}

func (OwnerOnly) Allows(db *gorm.DB, action Action, user models.User, resource interface{}) bool {
	owned, ok := resource.(Owned)
	if !ok {
		return false
	}
	return owned.OwnerUserID() == user.ID
}

func isInstructor(db *gorm.DB, courseID, userID uint) bool {
	var count int64
	db.Table("course_instructors").
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count)
	return count > 0
}

func isEnrolled(db *gorm.DB, courseID, userID uint) bool {
	var count int64
	db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND student_id = ?", courseID, userID).
		Count(&count)
	return count > 0
}
