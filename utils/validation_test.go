package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+393331234567",
		"+39 333 1234567",
		"333-123-4567",
		"(333) 123 4567",
		"0212345678",
	}
	for _, phone := range valid {
		if !ValidatePhone(phone) {
			t.Errorf("expected %q to be valid", phone)
		}
	}

	invalid := []string{
		"",
		"12345",
		"not-a-phone",
		"+39 333 12345678901234",
		"333.123.4567",
	}
	for _, phone := range invalid {
		if ValidatePhone(phone) {
			t.Errorf("expected %q to be invalid", phone)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("mario.rossi@example.com") {
		t.Error("expected address to be valid")
	}
	for _, email := range []string{"", "plain", "a@b", "a b@example.com"} {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}
