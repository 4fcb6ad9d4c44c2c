package courseController

import (
	"edumart/database"
	"edumart/middleware"
	courseModels "edumart/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateDiscussion posts a comment under a lecture. Only enrolled
// students may post.
func CreateDiscussion(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.EnrolledStudentsOnly
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only enrolled students can join the discussion!", nil)
	}

	chapter := c.Locals("chapter").(int)

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("course_id = ? AND chapter = ?", crs.ID, chapter).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	reqData, ok := c.Locals("validatedDiscussion").(*struct {
		Discussion string `json:"discussion"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	discussion := courseModels.Discussion{
		Discussion: reqData.Discussion,
		LectureID:  lecture.ID,
		StudentID:  user.ID,
	}

	if err := database.Database.Db.Create(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion created successfully!", discussion)
}

// GetDiscussions lists the comments under a lecture for users who can
// read the lecture.
func GetDiscussions(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.LectureAccess
	if !policy.Allows(database.Database.Db, middleware.ActionRead, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in the course to access its discussions!", nil)
	}

	chapter := c.Locals("chapter").(int)

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("course_id = ? AND chapter = ?", crs.ID, chapter).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	var discussions []courseModels.Discussion
	if err := database.Database.Db.Where("lecture_id = ?", lecture.ID).Order("created_at asc").Find(&discussions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch discussions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussions fetched successfully!", fiber.Map{
		"discussions": discussions,
	})
}
