package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Scheme identifies one of the signature layouts the gateway has shipped
// across its protocol versions. Each scheme is a pure function of
// (secret, timestamp, body); verification tries them in order and accepts the
// first match, reporting which one matched for the audit log.
type Scheme string

const (
	SchemeTimestampBody Scheme = "timestamp+body"
	SchemeBodyTimestamp Scheme = "body+timestamp"
	SchemeBodyOnly      Scheme = "body-only"
)

// schemes lists every known layout in the order they shipped.
var schemes = []struct {
	name    Scheme
	payload func(timestamp string, body []byte) []byte
}{
	{SchemeTimestampBody, func(ts string, body []byte) []byte { return append([]byte(ts), body...) }},
	{SchemeBodyTimestamp, func(ts string, body []byte) []byte { return append(append([]byte{}, body...), ts...) }},
	{SchemeBodyOnly, func(_ string, body []byte) []byte { return body }},
}

// sign computes the base64 HMAC-SHA256 the gateway uses.
func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks signature against every known scheme and returns the
// scheme that matched. ok is false when no scheme produces the signature.
func VerifySignature(secret, timestamp string, body []byte, signature string) (Scheme, bool) {
	if signature == "" {
		return "", false
	}
	for _, s := range schemes {
		expected := sign(secret, s.payload(timestamp, body))
		if hmac.Equal([]byte(expected), []byte(signature)) {
			return s.name, true
		}
	}
	return "", false
}
