package submit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Signature headers set on signed submissions.
const (
	HeaderSignature = "X-Beast-Signature"
	HeaderTimestamp = "X-Beast-Timestamp"
	HeaderID        = "X-Beast-Submission-ID"
)

// Signature authenticates a submission body. The MAC covers
// "<timestamp>.<body>" so a captured request cannot be replayed later with
// a fresh timestamp.
type Signature struct {
	Value     string
	Timestamp int64
	ID        string
}

// Apply sets the signature headers on h.
func (s Signature) Apply(h http.Header) {
	h.Set(HeaderSignature, s.Value)
	h.Set(HeaderTimestamp, strconv.FormatInt(s.Timestamp, 10))
	h.Set(HeaderID, s.ID)
}

// Sign computes the signature of payload at the given time.
func Sign(secret string, payload []byte, at time.Time) (Signature, error) {
	if secret == "" {
		return Signature{}, ErrInvalidSecret
	}
	ts := at.Unix()
	return Signature{
		Value:     mac(secret, ts, payload),
		Timestamp: ts,
		ID:        uuid.NewString(),
	}, nil
}

// Verify checks the signature headers of a received submission. A positive
// maxAge rejects signatures older than that or more than a minute in the
// future.
func Verify(secret string, payload []byte, h http.Header, maxAge time.Duration) error {
	if secret == "" {
		return ErrInvalidSecret
	}
	value := h.Get(HeaderSignature)
	if value == "" {
		return fmt.Errorf("%w: missing %s", ErrBadSignature, HeaderSignature)
	}
	ts, err := strconv.ParseInt(h.Get(HeaderTimestamp), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp", ErrBadSignature)
	}

	if maxAge > 0 {
		age := time.Since(time.Unix(ts, 0))
		if age > maxAge {
			return fmt.Errorf("%w: expired %v ago", ErrBadSignature, age-maxAge)
		}
		if age < -time.Minute {
			return fmt.Errorf("%w: timestamp in the future", ErrBadSignature)
		}
	}

	if !hmac.Equal([]byte(mac(secret, ts, payload)), []byte(value)) {
		return fmt.Errorf("%w: mismatch", ErrBadSignature)
	}
	return nil
}

func mac(secret string, ts int64, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.", ts)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
