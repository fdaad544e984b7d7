package validation

import "strings"

// SignUpRequest mirrors the fields needed for sign-up validation.
type SignUpRequest struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Department string
	Position   string
}

// ValidateSignUpRequest validates the fields of a registration request.
// Password strength is the auth service's policy, not checked here; this
// only guards presence and shape so invalid requests never reach it.
func ValidateSignUpRequest(req SignUpRequest) []FieldError {
	var errs []FieldError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	for _, f := range []struct {
		name, value string
	}{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"department", req.Department},
		{"position", req.Position},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, FieldError{Field: f.name, Message: f.name + " is required"})
		}
	}

	return errs
}

// SignInRequest mirrors the fields needed for sign-in validation.
type SignInRequest struct {
	Email    string
	Password string
}

// ValidateSignInRequest validates the fields of a sign-in request.
func ValidateSignInRequest(req SignInRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}
