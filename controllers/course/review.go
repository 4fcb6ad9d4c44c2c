package courseController

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateReview adds a course review. Only students with an active
// enrollment for the course may review it.
func CreateReview(c *fiber.Ctx) error {
	user, crs, err := loadCourseAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.EnrolledStudentsOnly
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, &crs) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only enrolled students can review the course!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*struct {
		Review string `json:"review"`
		Rating int    `json:"rating"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	review := courseModels.Review{
		Review:   reqData.Review,
		Rating:   reqData.Rating,
		OwnerID:  user.ID,
		CourseID: crs.ID,
	}

	if err := database.Database.Db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review created successfully!", review)
}

// GetReviews lists a course's reviews. Readable by anyone.
func GetReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var reviews []courseModels.Review
	if err := database.Database.Db.Where("course_id = ?", crs.ID).Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
	})
}

func loadReviewAndUser(c *fiber.Ctx) (models.User, courseModels.Review, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, courseModels.Review{}, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return models.User{}, courseModels.Review{}, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reviewID := c.Locals("reviewID").(int)

	var review courseModels.Review
	if err := database.Database.Db.Where("id = ?", reviewID).First(&review).Error; err != nil {
		return models.User{}, courseModels.Review{}, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	return user, review, nil
}

// GetReviewDetail returns a single review, author-only.
func GetReviewDetail(c *fiber.Ctx) error {
	user, review, err := loadReviewAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.OwnerOnly
	if !policy.Allows(database.Database.Db, middleware.ActionRead, user, review) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review fetched successfully!", review)
}

// UpdateReview mutates a review, author-only.
func UpdateReview(c *fiber.Ctx) error {
	user, review, err := loadReviewAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.OwnerOnly
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, review) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	reqData, ok := c.Locals("validatedReviewUpdate").(*struct {
		Review *string `json:"review"`
		Rating *int    `json:"rating"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Review != nil {
		review.Review = *reqData.Review
	}
	if reqData.Rating != nil {
		review.Rating = *reqData.Rating
	}

	if err := database.Database.Db.Save(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully!", review)
}

// DeleteReview removes a review, author-only. Aggregates are refreshed
// by the scheduler, not here.
func DeleteReview(c *fiber.Ctx) error {
	user, review, err := loadReviewAndUser(c)
	if err != nil {
		return err
	}

	var policy middleware.OwnerOnly
	if !policy.Allows(database.Database.Db, middleware.ActionWrite, user, review) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	if err := database.Database.Db.Delete(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}
