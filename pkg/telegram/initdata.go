// Package telegram verifies the signed initData payload that the Telegram
// mini-app launcher hands to the web front-end. Every API request carries the
// raw payload; nothing about the caller is trusted until it verifies.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"
)

var (
	ErrEmptyInitData = errors.New("empty initData")
	ErrMissingHash   = errors.New("initData has no hash field")
	ErrBadSignature  = errors.New("initData signature mismatch")
	ErrNoUser        = errors.New("initData has no user field")
)

// secretKeyPurpose keys the bot-token HMAC that derives the signing secret.
// Telegram specifies this exact constant for Web App payloads.
const secretKeyPurpose = "WebAppData"

// Verify checks the signature of a URL-query-encoded initData payload against
// the bot token and returns the decoded key/value pairs without the hash
// field. It is a pure function; any error means the request must be rejected.
func Verify(initData, botToken string) (map[string]string, error) {
	if initData == "" {
		return nil, ErrEmptyInitData
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, err
	}

	pairs := make(map[string]string, len(values))
	for key := range values {
		pairs[key] = values.Get(key)
	}

	received, ok := pairs["hash"]
	if !ok {
		return nil, ErrMissingHash
	}
	delete(pairs, "hash")

	expected := Sign(pairs, botToken)
	if !hmac.Equal([]byte(expected), []byte(received)) {
		return nil, ErrBadSignature
	}

	return pairs, nil
}

// Sign computes the lowercase hex signature Telegram would produce for the
// given pairs. Exported so tests and tooling can mint valid payloads.
func Sign(pairs map[string]string, botToken string) string {
	secret := hmac.New(sha256.New, []byte(secretKeyPurpose))
	secret.Write([]byte(botToken))

	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		if key == "hash" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+"="+pairs[key])
	}
	checkString := strings.Join(lines, "\n")

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	return hex.EncodeToString(mac.Sum(nil))
}

// WebAppUser is the identity object Telegram embeds in initData under "user".
type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}

// ParseUser extracts the embedded user object from verified initData pairs.
func ParseUser(pairs map[string]string) (*WebAppUser, error) {
	raw, ok := pairs["user"]
	if !ok || raw == "" {
		return nil, ErrNoUser
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, ErrNoUser
	}
	return &user, nil
}
