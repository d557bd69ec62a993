package validation

import "testing"

func TestEmailValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.c", true},
		{"user@example.com", true},
		{"user@examplecom", false},
		{"user.example.com", false},
		{"", false},
	}
	for _, c := range cases {
		if got := EmailValid(c.in); got != c.want {
			t.Errorf("EmailValid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPasswordValid(t *testing.T) {
	if PasswordValid("12345") {
		t.Error("5-char password should be invalid")
	}
	if !PasswordValid("123456") {
		t.Error("6-char password should be valid")
	}
}

func TestNameValid(t *testing.T) {
	if NameValid("a") {
		t.Error("1-char name should be invalid")
	}
	if !NameValid("Jo") {
		t.Error("2-char name should be valid")
	}
}

func TestBioValid(t *testing.T) {
	if BioValid("") {
		t.Error("empty bio should be invalid")
	}
	if BioValid("too short") {
		t.Error("9-char bio should be invalid")
	}
	if !BioValid("ten chars!") {
		t.Error("10-char bio should be valid")
	}
}

func TestInterestsValid(t *testing.T) {
	if InterestsValid([]string{"music", "film"}) {
		t.Error("two interests should be invalid")
	}
	if !InterestsValid([]string{"music", "film", "travel"}) {
		t.Error("three interests should be valid")
	}
}

func TestAgeRangeValid(t *testing.T) {
	cases := []struct {
		min, max int
		want     bool
	}{
		{18, 30, true},
		{18, 80, true},
		{17, 30, false},
		{18, 81, false},
		{30, 30, false},
		{40, 25, false},
	}
	for _, c := range cases {
		if got := AgeRangeValid(c.min, c.max); got != c.want {
			t.Errorf("AgeRangeValid(%d, %d) = %v, want %v", c.min, c.max, got, c.want)
		}
	}
}
