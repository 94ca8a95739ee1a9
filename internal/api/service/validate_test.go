package service

import (
	"dlin210/account-portal/internal/api/models"
	"testing"
)

func validForm() models.RegisterForm {
	return models.RegisterForm{
		Name:     "A",
		Email:    "a@b.com",
		Password: "password1",
		MobileNo: "1234567890",
	}
}

func hasError(errs []models.FieldError, msg string) bool {
	for _, e := range errs {
		if e.Msg == msg {
			return true
		}
	}
	return false
}

func TestValidateRegistration_Valid(t *testing.T) {
	errs := ValidateRegistration(validForm())
	if len(errs) != 0 {
		t.Errorf("expected no errors for a valid form, got %v", errs)
	}
}

func TestValidateRegistration_MissingFields(t *testing.T) {
	fields := []func(*models.RegisterForm){
		func(f *models.RegisterForm) { f.Name = "" },
		func(f *models.RegisterForm) { f.Email = "" },
		func(f *models.RegisterForm) { f.Password = "" },
		func(f *models.RegisterForm) { f.MobileNo = "" },
	}

	for i, clear := range fields {
		form := validForm()
		clear(&form)
		errs := ValidateRegistration(form)
		if !hasError(errs, msgMissingFields) {
			t.Errorf("case %d: expected %q, got %v", i, msgMissingFields, errs)
		}
	}
}

func TestValidateRegistration_ShortPassword(t *testing.T) {
	form := validForm()
	form.Password = "short1"
	errs := ValidateRegistration(form)
	if !hasError(errs, msgPasswordLength) {
		t.Errorf("expected %q, got %v", msgPasswordLength, errs)
	}

	// The length rule only fires when a password was submitted at all.
	form.Password = ""
	errs = ValidateRegistration(form)
	if hasError(errs, msgPasswordLength) {
		t.Errorf("did not expect %q for an absent password, got %v", msgPasswordLength, errs)
	}
}

func TestValidateRegistration_MobileNumber(t *testing.T) {
	cases := []struct {
		mobileNo string
		wantErr  bool
	}{
		{"1234567890", false},
		{"12345", true},
		{"12345678ab", true},
		{"abcdefghij", true},
	}

	for _, tc := range cases {
		form := validForm()
		form.MobileNo = tc.mobileNo
		errs := ValidateRegistration(form)
		if got := hasError(errs, msgMobileNumber); got != tc.wantErr {
			t.Errorf("mobileNo %q: mobile error = %v, want %v", tc.mobileNo, got, tc.wantErr)
		}
	}
}

// An empty mobile number fails the digit pattern too, so a blank field
// reports the mobile error on top of the missing-fields one. The behavior is
// deliberate: the form has always reported both, and callers may rely on the
// full error list being stable.
func TestValidateRegistration_EmptyMobileReportsBoth(t *testing.T) {
	form := validForm()
	form.MobileNo = ""
	errs := ValidateRegistration(form)

	if !hasError(errs, msgMissingFields) {
		t.Errorf("expected %q, got %v", msgMissingFields, errs)
	}
	if !hasError(errs, msgMobileNumber) {
		t.Errorf("expected %q for empty mobile number, got %v", msgMobileNumber, errs)
	}
}

func TestValidateRegistration_Email(t *testing.T) {
	cases := []struct {
		email   string
		wantErr bool
	}{
		{"a@b.co", false},
		{"first.last+tag@example-site.org", false},
		{"not-an-email", true},
		{"missing@tld", true},
		{"@nodomain.com", true},
		{"", true}, // pattern runs unconditionally, so empty email fails it too
	}

	for _, tc := range cases {
		form := validForm()
		form.Email = tc.email
		errs := ValidateRegistration(form)
		if got := hasError(errs, msgInvalidEmail); got != tc.wantErr {
			t.Errorf("email %q: invalid-email error = %v, want %v", tc.email, got, tc.wantErr)
		}
	}
}

// Validation holds no state: the same invalid form submitted twice yields
// the same error set both times.
func TestValidateRegistration_Idempotent(t *testing.T) {
	form := models.RegisterForm{Email: "not-an-email", Password: "short"}

	first := ValidateRegistration(form)
	second := ValidateRegistration(form)

	if len(first) != len(second) {
		t.Fatalf("error sets differ in size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("error %d differs: %q vs %q", i, first[i].Msg, second[i].Msg)
		}
	}
}

// Rules are evaluated in a fixed order and all matching errors are
// collected, not just the first.
func TestValidateRegistration_CollectsAllInOrder(t *testing.T) {
	errs := ValidateRegistration(models.RegisterForm{})

	want := []string{msgMissingFields, msgMobileNumber, msgInvalidEmail}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), errs)
	}
	for i, msg := range want {
		if errs[i].Msg != msg {
			t.Errorf("error %d: got %q, want %q", i, errs[i].Msg, msg)
		}
	}
}
