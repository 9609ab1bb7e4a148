package zanox

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// timestampFormat is the provider's required Date header format: GMT with a
// fixed textual timezone suffix (RFC1123 would render "UTC" instead).
const timestampFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// signer produces the ZXWS authentication header set for a request path.
type signer struct {
	connectID string
	secretKey string

	// hooks for deterministic tests
	now     func() time.Time
	randInt func() int64
}

func newSigner(connectID, secretKey string) *signer {
	return &signer{
		connectID: connectID,
		secretKey: secretKey,
		now:       time.Now,
		randInt:   rand.Int63,
	}
}

// headers returns the signed header set for a GET request against
// requestPath, merged over the base headers every request carries.
func (s *signer) headers(requestPath string) map[string]string {
	timestamp := s.timestamp()
	nonce := s.nonce()
	sig := s.signature(requestPath, timestamp, nonce)

	return map[string]string{
		"Accept":        "application/json",
		"Content-Type":  "application/json",
		"Authorization": fmt.Sprintf("ZXWS %s:%s", s.connectID, sig),
		"Date":          timestamp,
		"nonce":         nonce,
	}
}

func (s *signer) timestamp() string {
	return s.now().UTC().Format(timestampFormat)
}

// nonce builds a practically unique per-request token: md5 over the
// microsecond clock concatenated with a random integer.
func (s *signer) nonce() string {
	seed := strconv.FormatInt(s.now().UnixMicro(), 10) + strconv.FormatInt(s.randInt(), 10)
	sum := md5.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// signature is a pure function of path, timestamp, nonce and the secret key.
func (s *signer) signature(requestPath, timestamp, nonce string) string {
	sign := "GET" + requestPath + timestamp + nonce
	mac := hmac.New(sha1.New, []byte(s.secretKey))
	mac.Write([]byte(sign))
	return encodeHexBase64(hex.EncodeToString(mac.Sum(nil)))
}

// encodeHexBase64 reproduces the provider's signing quirk: the HMAC hex
// digest is converted back to bytes pairwise and those bytes are
// Base64-encoded. Base64 of the hex string itself is rejected.
func encodeHexBase64(hexDigest string) string {
	raw, err := hex.DecodeString(hexDigest)
	if err != nil {
		// digest always comes from hex.EncodeToString, so this is unreachable
		// for provider traffic; keep the quirk total for arbitrary input.
		return base64.StdEncoding.EncodeToString([]byte(hexDigest))
	}
	return base64.StdEncoding.EncodeToString(raw)
}
