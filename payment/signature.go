package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayment computes the hex HMAC-SHA256 the gateway sends after a
// successful payment: HMAC(secret, orderID + "|" + paymentID).
func SignPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the client-posted signature against a freshly
// computed one. This is a hard security gate before any order row is
// written. hmac.Equal keeps the comparison constant time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := SignPayment(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
