package courseController

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"

	"github.com/gofiber/fiber/v2"
)

func loadCourseAndUser(c *fiber.Ctx) (models.User, courseModels.Course, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, courseModels.Course{}, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return models.User{}, courseModels.Course{}, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return models.User{}, courseModels.Course{}, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return user, crs, nil
}

// CreateLecture adds a lecture to a course. Only the course owner or a
// listed instructor may create one, and chapter numbers are unique
// within a course.
func CreateLecture(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.LectureAccess
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner or instructors can manage lectures!", nil)
	}

	reqData, ok := c.Locals("validatedLecture").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		LectureURL  string `json:"lecture_url"`
		Thumbnail   string `json:"thumbnail"`
		DurationSec int64  `json:"duration_sec"`
		Chapter     int    `json:"chapter"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Chapter must be unique within the course; the unique index backs
	// this check against concurrent creates.
	var count int64
	database.Database.Db.Model(&courseModels.Lecture{}).
		Where("course_id = ? AND chapter = ?", crs.ID, reqData.Chapter).
		Count(&count)
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A lecture with this chapter number already exists in the course!", nil)
	}

	lecture := courseModels.Lecture{
		Title:       reqData.Title,
		Description: reqData.Description,
		LectureURL:  reqData.LectureURL,
		Thumbnail:   reqData.Thumbnail,
		DurationSec: reqData.DurationSec,
		Chapter:     reqData.Chapter,
		CourseID:    crs.ID,
	}

	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture created successfully!", lecture)
}

// GetLectures lists a course's lectures ordered by chapter. Readable by
// the owner, instructors and enrolled students.
func GetLectures(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.LectureAccess
	if !policy.Allows(database.Database.Db, middleware.ActionRead, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in the course to access its lectures!", nil)
	}

	var lectures []courseModels.Lecture
	if err := database.Database.Db.Where("course_id = ?", crs.ID).Order("chapter asc").Find(&lectures).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched successfully!", fiber.Map{
		"lectures": lectures,
	})
}

// GetLectureByChapter returns one lecture addressed by its chapter
// number within the course.
func GetLectureByChapter(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.LectureAccess
	if !policy.Allows(database.Database.Db, middleware.ActionRead, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in the course to access its lectures!", nil)
	}

	chapter := c.Locals("chapter").(int)

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("course_id = ? AND chapter = ?", crs.ID, chapter).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture fetched successfully!", lecture)
}

// UpdateLecture mutates a lecture, owner or instructor only.
func UpdateLecture(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.LectureAccess
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner or instructors can manage lectures!", nil)
	}

	chapter := c.Locals("chapter").(int)

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("course_id = ? AND chapter = ?", crs.ID, chapter).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	reqData, ok := c.Locals("validatedLectureUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		LectureURL  *string `json:"lecture_url"`
		Thumbnail   *string `json:"thumbnail"`
		DurationSec *int64  `json:"duration_sec"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		lecture.Title = *reqData.Title
	}
	if reqData.Description != nil {
		lecture.Description = *reqData.Description
	}
	if reqData.LectureURL != nil {
		lecture.LectureURL = *reqData.LectureURL
	}
	if reqData.Thumbnail != nil {
		lecture.Thumbnail = *reqData.Thumbnail
	}
	if reqData.DurationSec != nil {
		lecture.DurationSec = *reqData.DurationSec
	}

	if err := database.Database.Db.Save(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully!", lecture)
}

// DeleteLecture removes a lecture, owner or instructor only.
func DeleteLecture(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.LectureAccess
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner or instructors can manage lectures!", nil)
	}

	chapter := c.Locals("chapter").(int)

	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("course_id = ? AND chapter = ?", crs.ID, chapter).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if err := database.Database.Db.Delete(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}
