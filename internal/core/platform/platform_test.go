package platform

import "testing"

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://www.tiktok.com/@chef/video/123", TikTok},
		{"http://vm.tiktok.com/ZMabc/", TikTok},
		{"HTTPS://WWW.TIKTOK.COM/@X", TikTok},
		{"tiktok.com", TikTok},
		{"https://www.youtube.com/watch?v=abc", YouTube},
		{"https://youtube.com/shorts/abc?feature=share", YouTube},
		{"https://youtu.be/abc", YouTube},
		{"ftp://m.YouTube.com/x", YouTube},
		{"https://www.allrecipes.com/recipe/1/pie", Website},
		{"https://example.com/?ref=youtube", Website},
		{"", Website},
		{"not a url at all", Website},
	}
	for _, tc := range tests {
		if got := Classify(tc.url); got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestClassify_IgnoresSchemePathQuery(t *testing.T) {
	for _, scheme := range []string{"", "http://", "https://", "HTTPS://"} {
		for _, tail := range []string{"", "/", "/a/b", "?q=1", "/p?x=y#frag"} {
			if got := Classify(scheme + "youtu.be" + tail); got != YouTube {
				t.Fatalf("Classify(%q) = %q, want youtube", scheme+"youtu.be"+tail, got)
			}
			if got := Classify(scheme + "www.tiktok.com" + tail); got != TikTok {
				t.Fatalf("Classify(%q) = %q, want tiktok", scheme+"www.tiktok.com"+tail, got)
			}
		}
	}
}

func TestIsVideo(t *testing.T) {
	if !TikTok.IsVideo() || !YouTube.IsVideo() || Website.IsVideo() {
		t.Fatalf("IsVideo mismatch")
	}
	if Website.String() != "website" {
		t.Fatalf("String = %q", Website.String())
	}
}
