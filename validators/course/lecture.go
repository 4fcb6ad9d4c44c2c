package courseValidator

import (
	"strings"

	"edumart/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			LectureURL  string `json:"lecture_url"`
			Thumbnail   string `json:"thumbnail"`
			DurationSec int64  `json:"duration_sec"`
			Chapter     int    `json:"chapter"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		// Validate Lecture URL
		if strings.TrimSpace(reqData.LectureURL) == "" {
			errors["lecture_url"] = "Lecture URL is required!"
		}

		// Validate Chapter
		if reqData.Chapter <= 0 {
			errors["chapter"] = "Chapter must be a positive number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

func UpdateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			LectureURL  *string `json:"lecture_url"`
			Thumbnail   *string `json:"thumbnail"`
			DurationSec *int64  `json:"duration_sec"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.LectureURL != nil && strings.TrimSpace(*reqData.LectureURL) == "" {
			errors["lecture_url"] = "Lecture URL cannot be empty!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLectureUpdate", reqData)
		return c.Next()
	}
}

func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Review string `json:"review"`
			Rating int    `json:"rating"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Review) == "" {
			errors["review"] = "Review is required!"
		}
		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

func UpdateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Review *string `json:"review"`
			Rating *int    `json:"rating"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Review != nil && strings.TrimSpace(*reqData.Review) == "" {
			errors["review"] = "Review cannot be empty!"
		}
		if reqData.Rating != nil && (*reqData.Rating < 1 || *reqData.Rating > 5) {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReviewUpdate", reqData)
		return c.Next()
	}
}

func CreateDiscussion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Discussion string `json:"discussion"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Discussion) == "" {
			errors["discussion"] = "Discussion text is required!"
		} else if len(reqData.Discussion) > 100 {
			errors["discussion"] = "Discussion must be at most 100 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDiscussion", reqData)
		return c.Next()
	}
}
