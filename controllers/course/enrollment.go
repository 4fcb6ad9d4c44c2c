package courseController

import (
	"errors"

	"edumart/database"
	"edumart/middleware"
	"edumart/services"
	"edumart/utils"

	courseModels "edumart/models/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse is the free enrollment path. Paid courses must go
// through the checkout session flow so the payment gateway confirms
// the purchase first.
func EnrollInCourse(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	if crs.Price > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is paid. Create a checkout session to enroll!", nil)
	}

	enrollment, err := services.EnrollStudent(database.Database.Db, user, crs)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Already Enrolled in the course.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	go utils.SendEnrollmentEmail(user.Email, user.Name, crs.Title, enrollment.EnrollmentNo)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// UnenrollFromCourse removes the caller's enrollment and their
// membership in the course's enrolled-set.
func UnenrollFromCourse(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	enrollment, found := services.FindEnrollment(database.Database.Db, user.ID, crs.ID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if err := services.UnenrollStudent(database.Database.Db, enrollment); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll from course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled from course successfully!", nil)
}

// GetMyEnrollments lists the caller's enrollments.
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ?", userID).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}
