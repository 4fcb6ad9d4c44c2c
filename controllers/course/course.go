package courseController

import (
	"strings"

	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists catalog courses, optionally filtered by category
// or by a title search. Reading the catalog needs no authentication.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page     *int    `query:"page"`
		Limit    *int    `query:"limit"`
		Category *string `query:"category"`
		Q        *string `query:"q"`
	})

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	if ok {
		// Category filter takes precedence over the title search
		if reqData.Category != nil && *reqData.Category != "" {
			db = db.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(*reqData.Category)+"%")
		} else if reqData.Q != nil && *reqData.Q != "" {
			db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(*reqData.Q)+"%")
		}
	}

	if !ok || reqData.Page == nil {
		var courses []courseModels.Course
		if err := db.Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
			"courses": courses,
		})
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetUserCourses lists the catalog courses owned by one user.
func GetUserCourses(c *fiber.Ctx) error {
	ownerID := c.Locals("ownerID").(int)

	var owner models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", ownerID, false).First(&owner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User not found!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("owner_id = ? AND is_deleted = ?", owner.ID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	if len(courses) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No courses found for this user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetail returns a single course with its instructors.
func GetCourseDetail(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Instructors").First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", crs)
}

// CreateCourse creates a catalog course. Only teacher-role users may
// create one.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var policy middleware.TeacherOrReadOnly
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, nil) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only teachers can create courses!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title         string  `json:"title"`
		Category      string  `json:"category"`
		Description   string  `json:"description"`
		Outcomes      string  `json:"outcomes"`
		Prerequisites string  `json:"prerequisites"`
		Price         float64 `json:"price"`
		Currency      string  `json:"currency"`
		CoverImg      string  `json:"cover_img"`
		PreviewVideo  string  `json:"preview_video"`
		Languages     string  `json:"languages"`
		Captions      string  `json:"captions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	crs := courseModels.Course{
		Title:         reqData.Title,
		Category:      courseModels.Category(reqData.Category),
		Description:   reqData.Description,
		Outcomes:      reqData.Outcomes,
		Prerequisites: reqData.Prerequisites,
		Price:         reqData.Price,
		Currency:      courseModels.Currency(reqData.Currency),
		CoverImg:      reqData.CoverImg,
		PreviewVideo:  reqData.PreviewVideo,
		Languages:     reqData.Languages,
		Captions:      reqData.Captions,
		OwnerID:       user.ID,
	}
	if crs.Category == "" {
		crs.Category = courseModels.CategoryNotCategorized
	}

	if err := database.Database.Db.Create(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", crs)
}

// UpdateCourse mutates a course. Only the course owner may update it.
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var policy middleware.CourseOwnerOrReadOnly
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner can update the course!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title         *string  `json:"title"`
		Category      *string  `json:"category"`
		Description   *string  `json:"description"`
		Outcomes      *string  `json:"outcomes"`
		Prerequisites *string  `json:"prerequisites"`
		Price         *float64 `json:"price"`
		Currency      *string  `json:"currency"`
		CoverImg      *string  `json:"cover_img"`
		PreviewVideo  *string  `json:"preview_video"`
		Languages     *string  `json:"languages"`
		Captions      *string  `json:"captions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		crs.Title = *reqData.Title
	}
	if reqData.Category != nil {
		crs.Category = courseModels.Category(*reqData.Category)
	}
	if reqData.Description != nil {
		crs.Description = *reqData.Description
	}
	if reqData.Outcomes != nil {
		crs.Outcomes = *reqData.Outcomes
	}
	if reqData.Prerequisites != nil {
		crs.Prerequisites = *reqData.Prerequisites
	}
	if reqData.Price != nil {
		crs.Price = *reqData.Price
	}
	if reqData.Currency != nil {
		crs.Currency = courseModels.Currency(*reqData.Currency)
	}
	if reqData.CoverImg != nil {
		crs.CoverImg = *reqData.CoverImg
	}
	if reqData.PreviewVideo != nil {
		crs.PreviewVideo = *reqData.PreviewVideo
	}
	if reqData.Languages != nil {
		crs.Languages = *reqData.Languages
	}
	if reqData.Captions != nil {
		crs.Captions = *reqData.Captions
	}

	if err := database.Database.Db.Save(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// DeleteCourse removes a course and its lectures. Courses with active
// enrollments are protected and cannot be deleted.
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var policy middleware.CourseOwnerOrReadOnly
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner can delete the course!", nil)
	}

	var enrollmentCount int64
	database.Database.Db.Model(&courseModels.Enrollment{}).Where("course_id = ?", crs.ID).Count(&enrollmentCount)
	if enrollmentCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has active enrollments and cannot be deleted!", nil)
	}

	// Lectures are cascade-deleted with their course
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", crs.ID).Delete(&courseModels.Lecture{}).Error; err != nil {
			return err
		}
		return tx.Model(&crs).Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
