package payment

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

var ErrInvalidSignature = errors.New("invalid webhook signature")

// SignatureHeader is set by the processor on every webhook delivery.
const SignatureHeader = "X-Payment-Signature"

// Tolerance bounds how far in the past the signed timestamp may lie. A
// captured delivery stops verifying once the window passes, so it cannot
// be replayed indefinitely.
const Tolerance = 5 * time.Minute

// VerifySignature checks a processor callback against the pre-shared
// secret. The header carries "t=<unix>,v1=<hex>" where v1 is
// HMAC-SHA256(secret, "<t>.<raw body>"). It fails closed: a missing secret,
// a malformed header, or a timestamp older than Tolerance rejects the
// delivery.
func VerifySignature(payload []byte, header, secret string) error {
	if secret == "" || header == "" {
		return ErrInvalidSignature
	}
	var ts, sig string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sig = v
		}
	}
	if ts == "" || sig == "" {
		return ErrInvalidSignature
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return ErrInvalidSignature
	}
	if !hmac.Equal(got, computeSignature(payload, ts, secret)) {
		return ErrInvalidSignature
	}
	sent, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	if time.Since(time.Unix(sent, 0)) > Tolerance {
		return ErrInvalidSignature
	}
	return nil
}

// Sign builds a signature header for the given payload. Used by tests and
// local tooling that plays the processor's role.
func Sign(payload []byte, ts, secret string) string {
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(computeSignature(payload, ts, secret)))
}

func computeSignature(payload []byte, ts, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
