// Package platform tags a recipe URL with the site family it came from
package platform

import "strings"

// Platform is the source tag for a URL
type Platform string

const (
	// TikTok is a short video post on tiktok
	TikTok Platform = "tiktok"
	// YouTube is a video or short on youtube
	YouTube Platform = "youtube"
	// Website is any other page
	Website Platform = "website"
)

// known domains per platform, checked in order
var domains = []struct {
	p     Platform
	hosts []string
}{
	{TikTok, []string{"tiktok.com"}},
	{YouTube, []string{"youtube.com", "youtu.be"}},
}

// Classify returns the platform whose domain appears anywhere in the lower-cased url
// The url is not parsed or validated; no match yields Website
func Classify(url string) Platform {
	u := strings.ToLower(url)
	for _, d := range domains {
		for _, h := range d.hosts {
			if strings.Contains(u, h) {
				return d.p
			}
		}
	}
	return Website
}

// IsVideo reports whether p is a short video platform
func (p Platform) IsVideo() bool { return p == TikTok || p == YouTube }

// String implements fmt.Stringer
func (p Platform) String() string { return string(p) }
