package validators

import "testing"

func TestPasswordPolicyViolation(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     string
	}{
		{"valid", "Str0ng!pass", ""},
		{"too short", "Ab1!x", "Password must be at least 8 characters long"},
		{"no upper", "weak1pass!", "Password must contain at least one uppercase letter"},
		{"no lower", "WEAK1PASS!", "Password must contain at least one lowercase letter"},
		{"no digit", "Weakpass!", "Password must contain at least one digit"},
		{"no symbol", "Weak1pass", `Password must contain at least one special character (!@#$%^&*(),.?":{}|<>)`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PasswordPolicyViolation(tc.password); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPasswordPolicyAcceptsEachListedSymbol(t *testing.T) {
	for _, sym := range passwordSymbols {
		pw := "Passw0rd" + string(sym)
		if got := PasswordPolicyViolation(pw); got != "" {
			t.Fatalf("symbol %q rejected: %s", sym, got)
		}
	}
}
