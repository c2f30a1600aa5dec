package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/internal/service"
	"dnd-webapp-demo/backend/pkg/config"
	"dnd-webapp-demo/backend/pkg/errors"
	"dnd-webapp-demo/backend/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testBotToken = "12345:TEST-TOKEN"
	dmTgID       = int64(900)
)

// newTestRouter wires the auth middleware and the handlers under test onto a
// bare engine, backed by a throwaway database.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SheetTemplate{},
		&models.Character{},
		&models.Item{},
		&models.Spell{},
		&models.Ability{},
		&models.State{},
		&models.Summon{},
		&models.Equipment{},
	))

	cfg := &config.Config{}
	cfg.Telegram.BotToken = testBotToken
	cfg.Telegram.DMUserIDs = map[int64]struct{}{dmTgID: {}}

	users := service.NewUserService(db)
	characters := service.NewCharacterService(db)
	collections := service.NewCollectionService(db)

	meHandler := NewMeHandler()
	characterHandler := NewCharacterHandler(characters)
	collectionHandler := NewCollectionHandler(characters, collections)

	engine := gin.New()
	engine.Use(errors.ErrorHandler())

	protected := engine.Group("/api")
	protected.Use(InitDataAuth(cfg, users))
	{
		protected.GET("/me", meHandler.Me)
		protected.GET("/characters/:id", characterHandler.Get)
		protected.POST("/characters", characterHandler.Create)
		protected.PATCH("/characters/:id", characterHandler.Update)
		protected.GET("/characters/:id/items", collectionHandler.ListItems)
		protected.POST("/characters/:id/items", collectionHandler.AddItem)
	}

	return engine, db
}

// mintInitData produces a correctly signed payload for the given Telegram id.
func mintInitData(tgID int64) string {
	pairs := map[string]string{
		"user":      fmt.Sprintf(`{"id":%d,"first_name":"Tester"}`, tgID),
		"auth_date": "1700000000",
	}
	values := url.Values{}
	for key, value := range pairs {
		values.Set(key, value)
	}
	values.Set("hash", telegram.Sign(pairs, testBotToken))
	return values.Encode()
}

func doRequest(engine *gin.Engine, method, path, initData string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if initData != "" {
		req.Header.Set(InitDataHeader, initData)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Error.Code
}

func TestAuthMissingHeader(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MISSING_INIT_DATA", errorCode(t, w))
}

func TestAuthBadSignature(t *testing.T) {
	engine, _ := newTestRouter(t)

	payload := mintInitData(42) + "x" // corrupt the trailing hash byte
	w := doRequest(engine, http.MethodGet, "/api/me", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "BAD_SIGNATURE", errorCode(t, w))
}

func TestAuthMissingSignature(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/me", "auth_date=1700000000", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MISSING_SIGNATURE", errorCode(t, w))
}

func TestMeCreatesUserOnFirstContact(t *testing.T) {
	engine, db := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/me", mintInitData(42), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		UserID uint `json:"user_id"`
		IsDM   bool `json:"is_dm"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.NotZero(t, payload.UserID)
	assert.False(t, payload.IsDM)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("tg_id = ?", 42).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMeReportsGameMaster(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/me", mintInitData(dmTgID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		IsDM bool `json:"is_dm"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.True(t, payload.IsDM)
}

func TestCharacterVisibility(t *testing.T) {
	engine, _ := newTestRouter(t)

	// The owner creates a character.
	w := doRequest(engine, http.MethodPost, "/api/characters", mintInitData(42),
		gin.H{"name": "Aria"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/characters/%d", created.ID)

	// Owner reads it back.
	w = doRequest(engine, http.MethodGet, path, mintInitData(42), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A stranger gets 404, indistinguishable from a missing character.
	w = doRequest(engine, http.MethodGet, path, mintInitData(43), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	// The game master sees it.
	w = doRequest(engine, http.MethodGet, path, mintInitData(dmTgID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCollectionAccessSplit(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/characters", mintInitData(42),
		gin.H{"name": "Aria"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	itemsPath := fmt.Sprintf("/api/characters/%d/items", created.ID)

	// Child routes distinguish "character missing" from "no access".
	w = doRequest(engine, http.MethodGet, itemsPath, mintInitData(43), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NO_ACCESS", errorCode(t, w))

	w = doRequest(engine, http.MethodGet, "/api/characters/99999/items", mintInitData(43), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The game master may write.
	w = doRequest(engine, http.MethodPost, itemsPath, mintInitData(dmTgID),
		gin.H{"name": "Sword"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateReturnsClampedState(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/characters", mintInitData(42),
		gin.H{"name": "Aria"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(engine, http.MethodPatch, fmt.Sprintf("/api/characters/%d", created.ID),
		mintInitData(42), gin.H{"hp": 999, "xp": -5})
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Character models.Character `json:"character"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 10, payload.Character.HP, "clamped to the stored max")
	assert.Equal(t, 0, payload.Character.XP)
}

func TestInvalidPathID(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/characters/abc", mintInitData(42), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}
