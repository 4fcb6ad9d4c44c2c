package courseValidator

import (
	"strconv"
	"strings"

	"edumart/middleware"
	courseModels "edumart/models/course"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :id route parameter.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// OwnerID validates the :id route parameter addressing a user.
func OwnerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerIDStr := strings.TrimSpace(c.Params("id"))

		ownerID, err := strconv.Atoi(ownerIDStr)
		if err != nil || ownerID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("ownerID", ownerID)
		return c.Next()
	}
}

// ReviewID validates the :review_id route parameter.
func ReviewID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reviewIDStr := strings.TrimSpace(c.Params("review_id"))

		reviewID, err := strconv.Atoi(reviewIDStr)
		if err != nil || reviewID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Review ID!", nil)
		}

		c.Locals("reviewID", reviewID)
		return c.Next()
	}
}

// Chapter validates the :chapter route parameter.
func Chapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		chapterStr := strings.TrimSpace(c.Params("chapter"))

		chapter, err := strconv.Atoi(chapterStr)
		if err != nil || chapter <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter number!", nil)
		}

		c.Locals("chapter", chapter)
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		// Validate Category
		if reqData.Category != "" && !courseModels.Category(reqData.Category).Valid() {
			errors["category"] = "Unknown course category!"
		}

		// Validate Price
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		// Validate Currency
		if reqData.Currency == "" {
			errors["currency"] = "Currency is required!"
		} else if !courseModels.Currency(reqData.Currency).Valid() {
			errors["currency"] = "Unsupported currency code!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Category != nil && !courseModels.Category(*reqData.Category).Valid() {
			errors["category"] = "Unknown course category!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.Currency != nil && !courseModels.Currency(*reqData.Currency).Valid() {
			errors["currency"] = "Unsupported currency code!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int    `query:"page"`
			Limit    *int    `query:"limit"`
			Category *string `query:"category"`
			Q        *string `query:"q"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Pagination and filters are optional for catalog listing
		if reqData.Page == nil && reqData.Limit == nil &&
			reqData.Category == nil && reqData.Q == nil {
			return c.Next()
		}

		if reqData.Page != nil || reqData.Limit != nil {
			errors := make(map[string]string)

			if reqData.Page == nil || *reqData.Page < 1 {
				errors["page"] = "Page must be greater than 0!"
			}
			if reqData.Limit == nil || *reqData.Limit < 1 {
				errors["limit"] = "Limit must be greater than 0!"
			}

			if len(errors) > 0 {
				return middleware.ValidationErrorResponse(c, errors)
			}
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
