package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "charsheet", cfg.Database.Name)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BOT_TOKEN", "12345:abc")
	t.Setenv("DM_USER_IDS", "100, 200,300")
	t.Setenv("SERVER_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "12345:abc", cfg.Telegram.BotToken)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.True(t, cfg.IsDM(100))
	assert.True(t, cfg.IsDM(200))
	assert.True(t, cfg.IsDM(300))
	assert.False(t, cfg.IsDM(42))
}

func TestParseIDSetIgnoresGarbage(t *testing.T) {
	ids := parseIDSet("7, ,abc, 9,")

	assert.Len(t, ids, 2)
	_, ok := ids[7]
	assert.True(t, ok)
	_, ok = ids[9]
	assert.True(t, ok)
}

func TestParseIDSetEmpty(t *testing.T) {
	assert.Empty(t, parseIDSet(""))
}

func TestWebAppURLFallsBackToBaseURL(t *testing.T) {
	t.Setenv("BASE_URL", "https://sheets.example.com")

	cfg := Load()
	assert.Equal(t, "https://sheets.example.com/webapp/", cfg.Telegram.WebAppURL)
}
