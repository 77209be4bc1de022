package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hmacB64(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test-secret"
	timestamp := "1756500000000"
	body := []byte(`{"data":{"order":{"order_id":"order_1"}}}`)

	t.Run("Timestamp Then Body", func(t *testing.T) {
		sig := hmacB64(secret, append([]byte(timestamp), body...))

		scheme, ok := VerifySignature(secret, timestamp, body, sig)

		assert.True(t, ok)
		assert.Equal(t, SchemeTimestampBody, scheme)
	})

	t.Run("Body Then Timestamp", func(t *testing.T) {
		sig := hmacB64(secret, append(append([]byte{}, body...), timestamp...))

		scheme, ok := VerifySignature(secret, timestamp, body, sig)

		assert.True(t, ok)
		assert.Equal(t, SchemeBodyTimestamp, scheme)
	})

	t.Run("Body Only", func(t *testing.T) {
		sig := hmacB64(secret, body)

		scheme, ok := VerifySignature(secret, timestamp, body, sig)

		assert.True(t, ok)
		assert.Equal(t, SchemeBodyOnly, scheme)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		sig := hmacB64("other-secret", append([]byte(timestamp), body...))

		_, ok := VerifySignature(secret, timestamp, body, sig)

		assert.False(t, ok)
	})

	t.Run("Tampered Body", func(t *testing.T) {
		sig := hmacB64(secret, append([]byte(timestamp), body...))
		tampered := []byte(`{"data":{"order":{"order_id":"order_2"}}}`)

		_, ok := VerifySignature(secret, timestamp, tampered, sig)

		assert.False(t, ok)
	})

	t.Run("Empty Signature", func(t *testing.T) {
		_, ok := VerifySignature(secret, timestamp, body, "")
		assert.False(t, ok)
	})
}
