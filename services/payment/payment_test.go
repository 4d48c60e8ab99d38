package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"opdcare/models"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test-secret"
	v := models.PaymentVerification{
		OrderID:   "order_abc123",
		PaymentID: "pay_xyz789",
	}
	v.Signature = sign(v.OrderID, v.PaymentID, secret)
	assert.True(t, VerifySignature(v, secret))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	const secret = "test-secret"
	good := models.PaymentVerification{
		OrderID:   "order_abc123",
		PaymentID: "pay_xyz789",
	}
	good.Signature = sign(good.OrderID, good.PaymentID, secret)

	tamperedOrder := good
	tamperedOrder.OrderID = "order_other"
	assert.False(t, VerifySignature(tamperedOrder, secret))

	tamperedPayment := good
	tamperedPayment.PaymentID = "pay_other"
	assert.False(t, VerifySignature(tamperedPayment, secret))

	wrongSecret := good
	assert.False(t, VerifySignature(wrongSecret, "another-secret"))

	badSig := good
	badSig.Signature = "deadbeef"
	assert.False(t, VerifySignature(badSig, secret))
}

func TestVerifySignatureRejectsEmptyFields(t *testing.T) {
	assert.False(t, VerifySignature(models.PaymentVerification{}, "secret"))
	assert.False(t, VerifySignature(models.PaymentVerification{
		OrderID: "order_abc123", PaymentID: "pay_xyz789",
	}, "secret"))
}
