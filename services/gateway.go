package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"edumart/config"
	courseModels "edumart/models/course"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ProviderError wraps an error reported by the payment gateway. The
// provider's message is passed through to the caller; no local state is
// mutated when it occurs.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// CheckoutSession is the provider-hosted payment flow instance.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type productData struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type priceData struct {
	Currency    string      `json:"currency"`
	ProductData productData `json:"product_data"`
	UnitAmount  int64       `json:"unit_amount"`
}

type lineItem struct {
	PriceData priceData `json:"price_data"`
	Quantity  int       `json:"quantity"`
}

type checkoutSessionRequest struct {
	SuccessURL         string            `json:"success_url"`
	CancelURL          string            `json:"cancel_url"`
	Mode               string            `json:"mode"`
	PaymentMethodTypes []string          `json:"payment_method_types"`
	LineItems          []lineItem        `json:"line_items"`
	Metadata           map[string]string `json:"metadata"`
}

type gatewayErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// MinorUnits converts a major-unit amount to the provider's integer
// representation (e.g. 49.99 -> 4999 for 2-decimal currencies).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// MajorUnits converts a provider minor-unit amount back to the
// ledger's major-unit decimal amount.
func MajorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// CreateCheckoutSession asks the payment gateway for a hosted checkout
// session for the course purchase. The metadata carries the only
// correlation key available to the webhook reconciler, since no local
// record exists before the provider calls back.
func CreateCheckoutSession(crs courseModels.Course, userID uint) (*CheckoutSession, error) {
	domainURL := config.AppConfig.FrontendDomain
	infoQuery := fmt.Sprintf("course_name=%s&course_id=%d&amount=%.2f&currency=%s",
		crs.Title, crs.ID, crs.Price, crs.Currency)

	reqBody := checkoutSessionRequest{
		SuccessURL:         domainURL + "/payment/completed?status=success&session_id={CHECKOUT_SESSION_ID}&" + infoQuery,
		CancelURL:          domainURL + "/payment/completed?status=failed&" + infoQuery,
		Mode:               "payment",
		PaymentMethodTypes: []string{"card"},
		LineItems: []lineItem{
			{
				PriceData: priceData{
					Currency: strings.ToLower(string(crs.Currency)),
					ProductData: productData{
						Name:        crs.Title,
						Description: crs.Description,
						Images:      []string{crs.CoverImg},
					},
					UnitAmount: MinorUnits(crs.Price),
				},
				Quantity: 1,
			},
		},
		Metadata: map[string]string{
			"course_id": strconv.FormatUint(uint64(crs.ID), 10),
			"user_id":   strconv.FormatUint(uint64(userID), 10),
		},
	}

	var session CheckoutSession
	var gatewayErr gatewayErrorResponse

	client := resty.New().SetTimeout(15 * time.Second)
	resp, err := client.R().
		SetAuthToken(config.AppConfig.GatewaySecretKey).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody(reqBody).
		SetResult(&session).
		SetError(&gatewayErr).
		Post(config.AppConfig.GatewayAPIURL + "/v1/checkout/sessions")
	if err != nil {
		return nil, &ProviderError{Message: err.Error()}
	}

	if resp.IsError() {
		message := gatewayErr.Error.Message
		if message == "" {
			message = fmt.Sprintf("payment gateway returned status %d", resp.StatusCode())
		}
		return nil, &ProviderError{Message: message}
	}

	return &session, nil
}
