package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:55", "18:00", "23:59"}
	invalid := []string{"24:00", "9:55", "09:60", "0955", "", "09:55:00"}
	for _, s := range valid {
		if !IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	if !IsValidEmployeeCode("EMP-0042") {
		t.Error("IsValidEmployeeCode(EMP-0042) = false, want true")
	}
	for _, s := range []string{"EMP-42", "emp-0042", "0042", "EMP-00421"} {
		if IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-14"); !ok {
		t.Error("IsValidDate(2025-02-14) = false, want true")
	}
	for _, s := range []string{"14-02-2025", "2025/02/14", "2025-13-01", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}
