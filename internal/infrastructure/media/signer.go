// Package media implements the request signing scheme of the media host that
// stores song audio and artwork.
//
// A signature is the hex SHA-1 of the non-empty parameters rendered as
// "key=value", sorted, joined with "&", with the API secret appended.
package media

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
)

// Config holds the media host account credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Signer signs and verifies media host requests with the account secret.
type Signer struct {
	cfg Config
}

func NewSigner(cfg Config) *Signer {
	return &Signer{cfg: cfg}
}

// Sign returns the signature the media host computes for params.
func (s *Signer) Sign(params map[string]string) string {
	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

func (s *Signer) CloudName() string { return s.cfg.CloudName }

func (s *Signer) APIKey() string { return s.cfg.APIKey }
