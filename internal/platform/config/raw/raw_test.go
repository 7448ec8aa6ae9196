package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", " recipescraper-api ")
	t.Setenv("LOG_BLANK", "  ")
	c := New().Prefix("LOG_")

	cases := []struct {
		key  string
		want string
	}{
		{"SERVICE", "recipescraper-api"},
		{"BLANK", "def"},
		{"MISSING", "def"},
	}
	for _, tc := range cases {
		if got := c.Get(tc.key, "def"); got != tc.want {
			t.Fatalf("Get(%s) = %q, want %q", tc.key, got, tc.want)
		}
	}
	if got := New().Get("LOG_SERVICE", ""); got != "recipescraper-api" {
		t.Fatalf("root Get = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("LOG_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"  true  ", false, true},
		{"false", true, false},
		{"0", true, false},
		{"nope", true, false},
		{"", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		t.Setenv("LOG_CALLER", tc.val)
		if got := c.GetBool("CALLER", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	cases := []struct {
		val  string
		want int
	}{
		{"10", 10},
		{" 0 ", 0},
		{"", 7},
		{"-3", 7},
		{"+3", 7},
		{"3x", 7},
	}
	for _, tc := range cases {
		t.Setenv("LOG_SAMPLE_EVERY", tc.val)
		if got := c.GetInt("SAMPLE_EVERY", 7); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.val, got, tc.want)
		}
	}
}
