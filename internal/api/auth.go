package api

import (
	stderrors "errors"

	"dnd-webapp-demo/backend/internal/models"
	"dnd-webapp-demo/backend/internal/service"
	"dnd-webapp-demo/backend/pkg/config"
	"dnd-webapp-demo/backend/pkg/errors"
	"dnd-webapp-demo/backend/pkg/telegram"

	"github.com/gin-gonic/gin"
)

// InitDataHeader carries the raw signed payload from the mini-app.
const InitDataHeader = "X-TG-INIT-DATA"

// Context keys set by the auth middleware.
const (
	ctxUserKey   = "authUser"
	ctxTgUserKey = "tgUser"
	ctxIsDMKey   = "isDM"
)

// InitDataAuth returns a middleware that verifies the Telegram initData
// signature on every request, resolves the embedded identity to an internal
// user (creating one on first sight) and stores both on the context. Any
// verification failure is fatal to the request.
func InitDataAuth(cfg *config.Config, users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(InitDataHeader)
		if raw == "" {
			c.Error(errors.NewUnauthorizedError("MISSING_INIT_DATA", "Missing "+InitDataHeader+" header"))
			c.Abort()
			return
		}

		pairs, err := telegram.Verify(raw, cfg.Telegram.BotToken)
		if err != nil {
			if stderrors.Is(err, telegram.ErrMissingHash) {
				c.Error(errors.NewUnauthorizedError("MISSING_SIGNATURE", "initData carries no signature"))
			} else {
				c.Error(errors.NewUnauthorizedError("BAD_SIGNATURE", "initData signature verification failed"))
			}
			c.Abort()
			return
		}

		tgUser, err := telegram.ParseUser(pairs)
		if err != nil {
			c.Error(errors.NewUnauthorizedError("BAD_INIT_DATA", "initData carries no usable user identity"))
			c.Abort()
			return
		}

		user, err := users.GetOrCreateUser(tgUser.ID)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTgUserKey, tgUser)
		c.Set(ctxIsDMKey, cfg.IsDM(tgUser.ID))
		c.Next()
	}
}

// currentUser pulls the authenticated identity out of the gin context.
func currentUser(c *gin.Context) (*models.User, *telegram.WebAppUser, bool) {
	user := c.MustGet(ctxUserKey).(*models.User)
	tgUser := c.MustGet(ctxTgUserKey).(*telegram.WebAppUser)
	isDM := c.GetBool(ctxIsDMKey)
	return user, tgUser, isDM
}

// MeHandler serves GET /me: the raw Telegram user, the internal user id and
// the game-master flag.
type MeHandler struct{}

// NewMeHandler creates a new me handler
func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Me handles GET /me
func (h *MeHandler) Me(c *gin.Context) {
	user, tgUser, isDM := currentUser(c)
	c.JSON(200, gin.H{
		"tg":      tgUser,
		"user_id": user.ID,
		"is_dm":   isDM,
	})
}
