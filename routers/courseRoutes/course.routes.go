package courseRoutes

import (
	courseController "edumart/controllers/course"
	"edumart/middleware"
	courseValidator "edumart/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all catalog, lecture, enrollment,
// discussion and review routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog (reading needs no auth)
	courseGroup.Get("/list", courseValidator.CourseList(), courseController.GetAllCourses)
	courseGroup.Get("/:id", courseValidator.CourseID(), courseController.GetCourseDetail)
	courseGroup.Post("/", middleware.JWTMiddleware, courseValidator.CreateCourse(), courseController.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.UpdateCourse(), courseController.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.DeleteCourse)

	// Lectures
	courseGroup.Post("/:id/lecture", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.CreateLecture(), courseController.CreateLecture)
	courseGroup.Get("/:id/lectures", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetLectures)
	courseGroup.Get("/:id/lecture/:chapter", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.Chapter(), courseController.GetLectureByChapter)
	courseGroup.Put("/:id/lecture/:chapter", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.Chapter(), courseValidator.UpdateLecture(), courseController.UpdateLecture)
	courseGroup.Delete("/:id/lecture/:chapter", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.Chapter(), courseController.DeleteLecture)

	// Enrollment (free courses only; paid go through checkout)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.EnrollInCourse)
	courseGroup.Delete("/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.UnenrollFromCourse)

	// Discussions
	courseGroup.Post("/:id/lecture/:chapter/discussion", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.Chapter(), courseValidator.CreateDiscussion(), courseController.CreateDiscussion)
	courseGroup.Get("/:id/lecture/:chapter/discussions", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.Chapter(), courseController.GetDiscussions)

	// Reviews
	courseGroup.Post("/:id/review", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.CreateReview(), courseController.CreateReview)
	courseGroup.Get("/:id/reviews", courseValidator.CourseID(), courseController.GetReviews)
	courseGroup.Get("/review/:review_id", middleware.JWTMiddleware, courseValidator.ReviewID(), courseController.GetReviewDetail)
	courseGroup.Put("/review/:review_id", middleware.JWTMiddleware, courseValidator.ReviewID(), courseValidator.UpdateReview(), courseController.UpdateReview)
	courseGroup.Delete("/review/:review_id", middleware.JWTMiddleware, courseValidator.ReviewID(), courseController.DeleteReview)

	// User enrollments and owned courses
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseController.GetMyEnrollments)
	userGroup.Get("/:id/courses", courseValidator.OwnerID(), courseController.GetUserCourses)
}
