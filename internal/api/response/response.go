package response

import (
	"dlin210/account-portal/internal/api/models"
	"dlin210/account-portal/internal/session"

	"github.com/gin-gonic/gin"
)

// View names rendered by the portal.
const (
	ViewRegister  = "register.html"
	ViewLogin     = "login.html"
	ViewDashboard = "dashboard.html"
)

// HTML renders the named template with the given data, merging in any
// pending flash messages so the view layer consumes them exactly once.
func HTML(c *gin.Context, code int, view string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	success, errMsg := session.Flashes(c)
	if _, ok := data["successMsg"]; !ok {
		data["successMsg"] = success
	}
	if _, ok := data["errorMsg"]; !ok {
		data["errorMsg"] = errMsg
	}
	c.HTML(code, view, data)
}

// RegisterForm re-renders the registration form with the submitted values
// and the accumulated error list.
func RegisterForm(c *gin.Context, code int, form models.RegisterForm, errs []models.FieldError) {
	HTML(c, code, ViewRegister, gin.H{
		"errors":   errs,
		"name":     form.Name,
		"email":    form.Email,
		"password": form.Password,
		"mobileNo": form.MobileNo,
	})
}
