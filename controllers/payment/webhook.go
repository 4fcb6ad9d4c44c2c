package paymentController

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"edumart/config"
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"edumart/services"
	"edumart/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SignatureHeader carries the gateway's HMAC signature over the raw
// webhook body.
const SignatureHeader = "Gateway-Signature"

type gatewayEvent struct {
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type checkoutSessionObject struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	Currency      string            `json:"currency"`
	AmountTotal   int64             `json:"amount_total"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

type paymentIntentObject struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// HandleWebhook receives asynchronous payment gateway events. The
// gateway delivers at-least-once and may reorder or duplicate events,
// so every branch must be safe to run more than once. Callers are not
// trusted beyond the signature over the raw payload.
func HandleWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get(SignatureHeader)

	if err := services.VerifyWebhookSignature(payload, signature, config.AppConfig.GatewayWebhookSecret); err != nil {
		log.Printf("Webhook rejected: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Webhook signature verification failed!", nil)
	}

	var event gatewayEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("Webhook rejected: malformed payload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Malformed webhook payload!", nil)
	}

	switch event.Type {
	case "checkout.session.completed":
		return handleCheckoutCompleted(c, event.Data.Object)
	case "payment_intent.payment_failed":
		return handlePaymentFailed(c, event.Data.Object)
	default:
		// Acknowledge so the gateway does not retry events this
		// system does not understand.
		log.Printf("Webhook: unhandled event type %q", event.Type)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event ignored.", nil)
	}
}

// handleCheckoutCompleted creates the enrollment and payment records
// for a completed checkout in one transaction. An enrollment that
// already exists for the pair means a duplicate delivery for an
// already-processed purchase and is treated as success, not an error.
func handleCheckoutCompleted(c *fiber.Ctx, object json.RawMessage) error {
	var session checkoutSessionObject
	if err := json.Unmarshal(object, &session); err != nil {
		log.Printf("Webhook: malformed checkout session object: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Malformed webhook payload!", nil)
	}

	// The transaction id is the dedup key; without it two distinct
	// purchases would collide on the empty string and the later one
	// would be silently swallowed as a duplicate.
	if session.PaymentIntent == "" {
		log.Printf("Webhook: checkout session %q carries no payment intent", session.ID)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Malformed webhook payload!", nil)
	}

	user, crs, ok := resolveEventParties(session.Metadata)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown course or user in webhook event!", nil)
	}

	db := database.Database.Db
	newEnrollment := false
	var enrollment courseModels.Enrollment

	err := db.Transaction(func(tx *gorm.DB) error {
		// Duplicate delivery: the payment for this transaction has
		// already been recorded.
		var existing models.Payment
		if err := tx.Where("transaction_id = ?", session.PaymentIntent).First(&existing).Error; err == nil {
			return nil
		}

		var found bool
		enrollment, found = services.FindEnrollment(tx, user.ID, crs.ID)
		if !found {
			var err error
			enrollment, err = services.EnrollStudent(tx, user, crs)
			if err != nil {
				return err
			}
			newEnrollment = true
		}

		payment := models.Payment{
			TransactionID: session.PaymentIntent,
			SessionID:     session.ID,
			Currency:      strings.ToUpper(session.Currency),
			PaymentStatus: session.PaymentStatus,
			Amount:        services.MajorUnits(session.AmountTotal),
			EnrollmentID:  &enrollment.ID,
			UserID:        user.ID,
			CourseID:      crs.ID,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		// Left unacknowledged so the gateway retries: the failure is
		// transient (storage), not a property of the event.
		log.Printf("Webhook: failed to reconcile checkout %s: %v", session.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process webhook event!", nil)
	}

	if newEnrollment {
		go utils.SendEnrollmentEmail(user.Email, user.Name, crs.Title, enrollment.EnrollmentNo)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment successful.", nil)
}

// handlePaymentFailed records the failed transaction attempt. No
// enrollment is created; the payment row carries a null enrollment
// link.
func handlePaymentFailed(c *fiber.Ctx, object json.RawMessage) error {
	var intent paymentIntentObject
	if err := json.Unmarshal(object, &intent); err != nil {
		log.Printf("Webhook: malformed payment intent object: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Malformed webhook payload!", nil)
	}

	if intent.ID == "" {
		log.Println("Webhook: payment intent event carries no id")
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Malformed webhook payload!", nil)
	}

	user, crs, ok := resolveEventParties(intent.Metadata)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown course or user in webhook event!", nil)
	}

	db := database.Database.Db
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Payment
		if err := tx.Where("transaction_id = ?", intent.ID).First(&existing).Error; err == nil {
			return nil
		}

		payment := models.Payment{
			TransactionID: intent.ID,
			SessionID:     intent.Metadata["session_id"],
			Currency:      strings.ToUpper(intent.Currency),
			PaymentStatus: "failed",
			Amount:        services.MajorUnits(intent.Amount),
			UserID:        user.ID,
			CourseID:      crs.ID,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		log.Printf("Webhook: failed to record failed payment %s: %v", intent.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process webhook event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment failure recorded.", nil)
}

// resolveEventParties resolves the user and course referenced by the
// event metadata. The metadata is the only correlation key the gateway
// echoes back from session creation.
func resolveEventParties(metadata map[string]string) (models.User, courseModels.Course, bool) {
	courseID, err := strconv.Atoi(metadata["course_id"])
	if err != nil {
		log.Println("Webhook: missing or invalid course_id in event metadata")
		return models.User{}, courseModels.Course{}, false
	}
	userID, err := strconv.Atoi(metadata["user_id"])
	if err != nil {
		log.Println("Webhook: missing or invalid user_id in event metadata")
		return models.User{}, courseModels.Course{}, false
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		log.Printf("Webhook: user %d not found", userID)
		return models.User{}, courseModels.Course{}, false
	}

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		log.Printf("Webhook: course %d not found", courseID)
		return models.User{}, courseModels.Course{}, false
	}

	return user, crs, true
}
