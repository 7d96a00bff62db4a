package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance is the maximum accepted age of a signed webhook payload.
const DefaultTolerance = 5 * time.Minute

// VerifySignature checks a Stripe-style webhook signature header of the form
// "t=<unix>,v1=<hex hmac>" against the raw payload. The HMAC-SHA256 is
// computed over "<t>.<payload>" with the shared webhook secret. Returns a
// non-nil error when the header is malformed, the signature does not match,
// or the timestamp is outside the tolerance window.
func VerifySignature(secret string, payload []byte, header string, now time.Time) error {
	if secret == "" || header == "" {
		return fmt.Errorf("missing webhook secret or signature header")
	}

	var ts int64
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			parsed, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid signature timestamp")
			}
			ts = parsed
		case "v1":
			candidates = append(candidates, kv[1])
		}
	}

	if ts == 0 || len(candidates) == 0 {
		return fmt.Errorf("signature header missing t or v1 component")
	}

	age := now.Sub(time.Unix(ts, 0))
	if age > DefaultTolerance || age < -DefaultTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	expected := ComputeSignature(secret, payload, ts)
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return fmt.Errorf("no matching v1 signature")
}

// ComputeSignature returns the hex HMAC-SHA256 of "<ts>.<payload>".
func ComputeSignature(secret string, payload []byte, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureHeader builds a signature header for the given payload, used by
// tests and local webhook replay tooling.
func SignatureHeader(secret string, payload []byte, ts int64) string {
	return fmt.Sprintf("t=%d,v1=%s", ts, ComputeSignature(secret, payload, ts))
}
