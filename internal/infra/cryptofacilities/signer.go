package cryptofacilities

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
)

// APIKey is a credential pair issued by the exchange. Private is the
// base64-encoded secret. Keys are held by the caller and never persisted.
type APIKey struct {
	Public  string
	Private string
}

// Signer computes the Authent header value for authenticated requests
type Signer struct {
	privateKey string
}

// NewSigner creates a new Signer for the given base64 private key
func NewSigner(privateKey string) *Signer {
	return &Signer{privateKey: privateKey}
}

// Sign computes the authentication token for one request.
// postData: the URL-encoded parameter string, in caller order (may be "")
// nonce: the decimal nonce string consumed for this request
// endpointPath: the versioned path, e.g. /api/v3/sendorder
//
// The token is base64(HMAC-SHA512(base64decode(privateKey), SHA-256(postData + nonce + endpointPath))).
func (s *Signer) Sign(postData, nonce, endpointPath string) (string, error) {
	secret, err := base64.StdEncoding.DecodeString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("decode private key: %w", err)
	}

	digest := sha256.Sum256([]byte(postData + nonce + endpointPath))

	mac := hmac.New(sha512.New, secret)
	mac.Write(digest[:])

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
