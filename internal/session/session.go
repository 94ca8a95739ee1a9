// Package session wraps the gin-contrib session middleware with the
// handful of operations the portal needs: authenticating a session,
// tearing it down, and one-shot flash messages.
package session

import (
	"dlin210/account-portal/internal/api/models"
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash values are stored as []interface{} inside the session; the stores
// gob-encode them.
func init() {
	gob.Register([]interface{}{})
}

const (
	keyUserID = "auth_user_id"
	keyEmail  = "auth_email"

	// FlashSuccess and FlashError are the flash categories consumed by the
	// view templates.
	FlashSuccess = "success_msg"
	FlashError   = "error_msg"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/users/login"

// Login marks the session as authenticated for the given user.
func Login(c *gin.Context, user *models.User) error {
	s := sessions.Default(c)
	s.Set(keyUserID, user.ID.Hex())
	s.Set(keyEmail, user.Email)
	return s.Save()
}

// Logout clears all session state, including any pending flashes.
func Logout(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// CurrentEmail returns the authenticated user's email, if any.
func CurrentEmail(c *gin.Context) (string, bool) {
	s := sessions.Default(c)
	email, ok := s.Get(keyEmail).(string)
	return email, ok && email != ""
}

// SetFlash queues a one-shot message under the given category. The message
// is removed from the session when Flashes reads it.
func SetFlash(c *gin.Context, category, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg, category)
	return s.Save()
}

// Flashes drains the pending success and error messages. It saves the
// session so drained flashes do not reappear on a later request.
func Flashes(c *gin.Context) (success, errMsg string) {
	s := sessions.Default(c)
	if msgs := s.Flashes(FlashSuccess); len(msgs) > 0 {
		success, _ = msgs[0].(string)
	}
	if msgs := s.Flashes(FlashError); len(msgs) > 0 {
		errMsg, _ = msgs[0].(string)
	}
	_ = s.Save()
	return success, errMsg
}

// RequireLogin redirects unauthenticated requests to the login form with an
// error flash.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentEmail(c); !ok {
			_ = SetFlash(c, FlashError, "Please log in to view this resource")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
