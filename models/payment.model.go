package models

import "time"

// Payment is one row per transaction attempt outcome. Rows are never
// updated after creation; the ledger is append-only.
type Payment struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	TransactionID string    `json:"transaction_id" gorm:"size:108;uniqueIndex;not null"`
	SessionID     string    `json:"session_id" gorm:"size:108"`
	Currency      string    `json:"currency" gorm:"size:3"`
	PaymentStatus string    `json:"payment_status" gorm:"size:18"`
	Amount        float64   `json:"amount" gorm:"type:decimal(7,2)"` // major units
	EnrollmentID  *uint     `json:"enrollment_id"`                   // absent on failed payments
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	CourseID      uint      `json:"course_id" gorm:"index;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// OwnerUserID satisfies the owner-only access policy.
func (p Payment) OwnerUserID() uint { return p.UserID }
