package models

// PaymentOrder is the gateway order handed back to the front desk so the
// patient can complete payment. Amount is in the smallest currency unit
// (paise for INR), as the gateway expects.
type PaymentOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Key      string `json:"key"`
}

// PaymentVerification carries the gateway callback fields whose signature
// must be checked before a payment is accepted.
type PaymentVerification struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}
