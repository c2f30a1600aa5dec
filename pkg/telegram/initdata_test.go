package telegram

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:TEST-TOKEN"

func mintInitData(t *testing.T, botToken string, pairs map[string]string) string {
	t.Helper()

	values := url.Values{}
	for key, value := range pairs {
		values.Set(key, value)
	}
	values.Set("hash", Sign(pairs, botToken))
	return values.Encode()
}

func TestVerifyValidPayload(t *testing.T) {
	payload := mintInitData(t, testBotToken, map[string]string{
		"user":      `{"id":42,"first_name":"Aria"}`,
		"auth_date": "1700000000",
		"query_id":  "AAEqdGVzdA",
	})

	pairs, err := Verify(payload, testBotToken)
	require.NoError(t, err)

	assert.Equal(t, `{"id":42,"first_name":"Aria"}`, pairs["user"])
	assert.Equal(t, "1700000000", pairs["auth_date"])
	assert.NotContains(t, pairs, "hash")
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	pairs := map[string]string{
		"user":      `{"id":42,"first_name":"Aria"}`,
		"auth_date": "1700000000",
	}
	values := url.Values{}
	for key, value := range pairs {
		values.Set(key, value)
	}
	values.Set("hash", Sign(pairs, testBotToken))

	// Flip the identity after signing.
	values.Set("user", `{"id":43,"first_name":"Mallory"}`)

	_, err := Verify(values.Encode(), testBotToken)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyRejectsWrongBotToken(t *testing.T) {
	payload := mintInitData(t, testBotToken, map[string]string{
		"user":      `{"id":42,"first_name":"Aria"}`,
		"auth_date": "1700000000",
	})

	_, err := Verify(payload, "999:OTHER-TOKEN")
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyMissingHash(t *testing.T) {
	_, err := Verify("user=%7B%22id%22%3A42%7D&auth_date=1700000000", testBotToken)
	assert.ErrorIs(t, err, ErrMissingHash)
}

func TestVerifyEmptyPayload(t *testing.T) {
	_, err := Verify("", testBotToken)
	assert.ErrorIs(t, err, ErrEmptyInitData)
}

func TestSignIsOrderIndependent(t *testing.T) {
	// The check string is built from sorted keys, so the signature must not
	// depend on the order the query string happens to arrive in.
	pairs := map[string]string{
		"user":      `{"id":42}`,
		"auth_date": "1700000000",
		"query_id":  "AAE",
	}
	signature := Sign(pairs, testBotToken)

	shuffled := "query_id=AAE&user=" + url.QueryEscape(`{"id":42}`) +
		"&hash=" + signature + "&auth_date=1700000000"

	verified, err := Verify(shuffled, testBotToken)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", verified["auth_date"])
}

func TestVerifyKeepsBlankValues(t *testing.T) {
	pairs := map[string]string{
		"user":      `{"id":7,"first_name":"Kel"}`,
		"auth_date": "1700000000",
		"start":     "",
	}

	verified, err := Verify(mintInitData(t, testBotToken, pairs), testBotToken)
	require.NoError(t, err)

	value, ok := verified["start"]
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestParseUser(t *testing.T) {
	pairs := map[string]string{
		"user": `{"id":42,"first_name":"Aria","username":"aria_the_bold","is_premium":true}`,
	}

	user, err := ParseUser(pairs)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "Aria", user.FirstName)
	assert.Equal(t, "aria_the_bold", user.Username)
	assert.True(t, user.IsPremium)
}

func TestParseUserMissing(t *testing.T) {
	_, err := ParseUser(map[string]string{"auth_date": "1700000000"})
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestParseUserZeroID(t *testing.T) {
	_, err := ParseUser(map[string]string{"user": `{"first_name":"Nobody"}`})
	assert.ErrorIs(t, err, ErrNoUser)
}
