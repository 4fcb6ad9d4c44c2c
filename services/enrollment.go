package services

import (
	"crypto/rand"
	"errors"
	"math/big"

	"edumart/models"
	courseModels "edumart/models/course"

	"gorm.io/gorm"
)

// ErrAlreadyEnrolled is returned when a (student, course) pair already
// has an enrollment record.
var ErrAlreadyEnrolled = errors.New("already enrolled in the course")

const enrollmentNoLength = 10

// EnrollStudent creates an enrollment for the student in the course and
// adds the student to the course's enrolled-set in the same
// transaction. The composite unique index on (student_id, course_id)
// backs the existence check under concurrent attempts.
func EnrollStudent(db *gorm.DB, student models.User, crs courseModels.Course) (courseModels.Enrollment, error) {
	if _, found := FindEnrollment(db, student.ID, crs.ID); found {
		return courseModels.Enrollment{}, ErrAlreadyEnrolled
	}

	enrollmentNo, err := generateEnrollmentNo(db)
	if err != nil {
		return courseModels.Enrollment{}, err
	}

	enrollment := courseModels.Enrollment{
		EnrollmentNo: enrollmentNo,
		StudentID:    student.ID,
		CourseID:     crs.ID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&crs).Association("Students").Append(&student)
	})
	if err != nil {
		return courseModels.Enrollment{}, err
	}

	return enrollment, nil
}

// UnenrollStudent removes the enrollment record and the student's
// membership in the course's enrolled-set in one transaction, so the
// set is never left stale if either delete fails.
func UnenrollStudent(db *gorm.DB, enrollment courseModels.Enrollment) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&courseModels.Enrollment{}, enrollment.ID).Error; err != nil {
			return err
		}
		crs := courseModels.Course{Model: gorm.Model{ID: enrollment.CourseID}}
		student := models.User{Model: gorm.Model{ID: enrollment.StudentID}}
		return tx.Model(&crs).Association("Students").Delete(&student)
	})
}

// FindEnrollment returns the enrollment for the (student, course) pair
// if one exists.
func FindEnrollment(db *gorm.DB, studentID, courseID uint) (courseModels.Enrollment, bool) {
	var enrollment courseModels.Enrollment
	err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err != nil {
		return courseModels.Enrollment{}, false
	}
	return enrollment, true
}

// generateEnrollmentNo samples 10-digit numeric strings until one not
// present in the ledger is found. The unique column is still the final
// arbiter; the loop keeps collisions out of the common path.
func generateEnrollmentNo(db *gorm.DB) (string, error) {
	for {
		enrollmentNo, err := randomDigits(enrollmentNoLength)
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&courseModels.Enrollment{}).
			Where("enrollment_no = ?", enrollmentNo).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return enrollmentNo, nil
		}
	}
}

func randomDigits(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
