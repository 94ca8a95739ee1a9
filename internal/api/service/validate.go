package service

import (
	"dlin210/account-portal/internal/api/models"
	"regexp"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

const (
	msgMissingFields  = "Please fill in all fields"
	msgPasswordLength = "Password should be at least 8 characters"
	msgMobileNumber   = "Mobile number should be at least 10 digits and only contain digits"
	msgInvalidEmail   = "Invalid email address"
)

// ValidateRegistration runs every registration rule and collects all
// violations, in a fixed order. An empty result means the form is valid.
//
// Two rules intentionally fire on empty input as well: the digit check
// rejects an empty mobile number, and the email pattern rejects an empty
// email, so a blank form reports those alongside the missing-fields message.
func ValidateRegistration(form models.RegisterForm) []models.FieldError {
	var errs []models.FieldError

	if form.Name == "" || form.Email == "" || form.Password == "" || form.MobileNo == "" {
		errs = append(errs, models.FieldError{Msg: msgMissingFields})
	}

	if form.Password != "" && len(form.Password) < 8 {
		errs = append(errs, models.FieldError{Msg: msgPasswordLength})
	}

	if (form.MobileNo != "" && len(form.MobileNo) < 10) || !digitsPattern.MatchString(form.MobileNo) {
		errs = append(errs, models.FieldError{Msg: msgMobileNumber})
	}

	if !emailPattern.MatchString(form.Email) {
		errs = append(errs, models.FieldError{Msg: msgInvalidEmail})
	}

	return errs
}
