package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrSignatureVerification is returned when a webhook payload cannot be
// authenticated. Processing must fail closed on it.
var ErrSignatureVerification = errors.New("webhook signature verification failed")

// signatureTolerance bounds the age of a signed webhook payload to
// limit replay of captured requests.
const signatureTolerance = 5 * time.Minute

// SignWebhookPayload produces the signature header value for a payload,
// in the provider's "t=<unix>,v1=<hex hmac>" format. The provider signs
// the string "<t>.<payload>" with the shared webhook secret.
func SignWebhookPayload(payload []byte, secret string, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

// VerifyWebhookSignature checks the signature header against the raw
// request body. A missing or malformed header, an expired timestamp or
// a digest mismatch all reject the payload.
func VerifyWebhookSignature(payload []byte, header, secret string) error {
	if header == "" || secret == "" {
		return ErrSignatureVerification
	}

	var timestamp int64
	var signatures [][]byte

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return ErrSignatureVerification
			}
			timestamp = parsed
		case "v1":
			decoded, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			signatures = append(signatures, decoded)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return ErrSignatureVerification
	}

	age := time.Since(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return ErrSignatureVerification
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, signature := range signatures {
		if hmac.Equal(expected, signature) {
			return nil
		}
	}

	return ErrSignatureVerification
}
