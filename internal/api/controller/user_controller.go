package controller

import (
	"dlin210/account-portal/internal/api/models"
	"dlin210/account-portal/internal/api/response"
	"dlin210/account-portal/internal/api/service"
	"dlin210/account-portal/internal/session"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("controller.user")

// DashboardPath is where a successful login lands.
const DashboardPath = "/app/dashboard"

// UserController handles the registration, login, and logout endpoints.
type UserController struct {
	userService service.UserService
	verifier    service.CredentialVerifier
}

// NewUserController creates a new UserController. The verifier is injected
// separately so the login handler stays a pure delegation to it.
func NewUserController(userService service.UserService, verifier service.CredentialVerifier) *UserController {
	return &UserController{
		userService: userService,
		verifier:    verifier,
	}
}

// ShowRegister renders the empty registration form.
func (uc *UserController) ShowRegister(c *gin.Context) {
	response.HTML(c, http.StatusOK, response.ViewRegister, nil)
}

// ShowLogin renders the login form.
func (uc *UserController) ShowLogin(c *gin.Context) {
	response.HTML(c, http.StatusOK, response.ViewLogin, nil)
}

// Register handles the registration submission. Exactly one of the branches
// below responds; every collaborator failure is terminal for the request.
func (uc *UserController) Register(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "UserController.Register")
	defer span.End()

	form := models.RegisterForm{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		MobileNo: c.PostForm("mobileNo"),
	}
	span.SetAttributes(attribute.String("user.email", form.Email))

	if errs := service.ValidateRegistration(form); len(errs) > 0 {
		response.RegisterForm(c, http.StatusBadRequest, form, errs)
		return
	}

	user, err := uc.userService.Register(ctx, form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.RegisterForm(c, http.StatusBadRequest, form,
				[]models.FieldError{{Msg: "Email is already registered"}})
		case errors.Is(err, service.ErrExistsCheck):
			slog.ErrorContext(ctx, "registration lookup failed", "error", err)
			response.RegisterForm(c, http.StatusInternalServerError, form,
				[]models.FieldError{{Msg: "Error checking if user exists"}})
		default:
			slog.ErrorContext(ctx, "registration persist failed", "error", err)
			response.RegisterForm(c, http.StatusInternalServerError, form,
				[]models.FieldError{{Msg: "Error creating user"}})
		}
		return
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID.Hex())
	if err := session.SetFlash(c, session.FlashSuccess, "You have successfully signed up, proceed to login"); err != nil {
		slog.ErrorContext(ctx, "failed to set signup flash", "error", err)
	}
	// The login view is pre-populated with the submitted credentials as a
	// convenience; the response goes back to the same client that typed them.
	response.HTML(c, http.StatusOK, response.ViewLogin, gin.H{
		"email":    form.Email,
		"password": form.Password,
	})
}

// Login delegates credential verification to the injected verifier and
// routes the outcome: dashboard on success, back to the form on failure.
func (uc *UserController) Login(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "UserController.Login")
	defer span.End()

	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		// A malformed body gets the same treatment as bad credentials.
		_ = session.SetFlash(c, session.FlashError, "Email or password incorrect")
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}

	user, err := uc.verifier.Verify(ctx, form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.ErrorContext(ctx, "credential verification failed", "error", err)
		}
		_ = session.SetFlash(c, session.FlashError, "Email or password incorrect")
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}

	if err := session.Login(c, user); err != nil {
		slog.ErrorContext(ctx, "failed to save session", "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID.Hex())
	c.Redirect(http.StatusFound, DashboardPath)
}

// Logout terminates the session and redirects to the login form.
func (uc *UserController) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if err := session.Logout(c); err != nil {
		slog.ErrorContext(ctx, "failed to clear session", "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := session.SetFlash(c, session.FlashSuccess, "You have logged out"); err != nil {
		slog.ErrorContext(ctx, "failed to set logout flash", "error", err)
	}
	c.Redirect(http.StatusFound, session.LoginPath)
}

// Dashboard renders the authenticated landing page.
func (uc *UserController) Dashboard(c *gin.Context) {
	email, _ := session.CurrentEmail(c)
	response.HTML(c, http.StatusOK, response.ViewDashboard, gin.H{
		"email": email,
	})
}
