package validators

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// Register installs custom validation rules on gin's binding engine.
// Call once at startup before routes are registered.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("strongpassword", strongPassword)
	}
}

func strongPassword(fl validator.FieldLevel) bool {
	return PasswordPolicyViolation(fl.Field().String()) == ""
}

// PasswordPolicyViolation returns an empty string when the password meets
// the policy, otherwise a human-readable description of the first rule it
// breaks. Checks run in a fixed order so error messages are stable.
func PasswordPolicyViolation(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return "Password must contain at least one uppercase letter"
	case !hasLower:
		return "Password must contain at least one lowercase letter"
	case !hasDigit:
		return "Password must contain at least one digit"
	case !hasSymbol:
		return `Password must contain at least one special character (!@#$%^&*(),.?":{}|<>)`
	}
	return ""
}
