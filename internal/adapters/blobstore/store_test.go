package blobstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"recipescraper/internal/adapters/fetch"
	"recipescraper/internal/platform/config"
	perr "recipescraper/internal/platform/errors"
	"recipescraper/internal/platform/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fakePut struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePut) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

type fakeDL struct {
	res fetch.Result
	err error
}

func (f fakeDL) Image(_ context.Context, url string) (fetch.Result, error) {
	if f.err != nil {
		return fetch.Result{}, f.err
	}
	r := f.res
	r.URL = url
	return r, nil
}

func assertUploads(t *testing.T, reg *metrics.Registry, outcome string) {
	t.Helper()
	want := `
# HELP recipescraper_image_uploads_total Image uploads to object storage by outcome
# TYPE recipescraper_image_uploads_total counter
recipescraper_image_uploads_total{outcome="` + outcome + `"} 1
`
	if err := testutil.GatherAndCompare(reg.Gatherer(), strings.NewReader(want), "recipescraper_image_uploads_total"); err != nil {
		t.Fatalf("uploads metric: %v", err)
	}
}

var fixedID = uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")

func newStore(put Putter, dl Downloader, m *metrics.Registry) *Store {
	s := NewWith(put, dl, Options{Bucket: "recipes", Region: "eu-west-2"}, m)
	s.newKey = func() (uuid.UUID, error) { return fixedID, nil }
	return s
}

func TestUpload_PutsPublicObject(t *testing.T) {
	put := &fakePut{}
	reg := metrics.New()
	s := newStore(put, fakeDL{res: fetch.Result{ContentType: "application/octet-stream", Body: pngBytes}}, reg)

	obj, err := s.Upload(context.Background(), "https://cdn.example/photos/cake")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	wantKey := "uploads/scraper/" + fixedID.String() + ".png"
	if obj.Key != wantKey {
		t.Fatalf("key = %q, want %q", obj.Key, wantKey)
	}
	if obj.URL != "https://recipes.s3.eu-west-2.amazonaws.com/"+wantKey {
		t.Fatalf("url = %q", obj.URL)
	}
	if aws.ToString(put.in.Bucket) != "recipes" || aws.ToString(put.in.ContentType) != "image/png" {
		t.Fatalf("put input = %+v", put.in)
	}
	if put.in.ACL != s3types.ObjectCannedACLPublicRead {
		t.Fatalf("acl = %q", put.in.ACL)
	}
	if string(put.body) != string(pngBytes) {
		t.Fatalf("body not forwarded")
	}
	assertUploads(t, reg, "ok")
}

func TestUpload_Failures(t *testing.T) {
	cases := []struct {
		name string
		put  *fakePut
		dl   fakeDL
		url  string
		want perr.ErrorCode
	}{
		{"empty url", &fakePut{}, fakeDL{}, "", perr.ErrorCodeInvalidArgument},
		{"download fails", &fakePut{}, fakeDL{err: perr.NotFoundf("gone")}, "https://x/a.jpg", perr.ErrorCodeNotFound},
		{"empty body", &fakePut{}, fakeDL{res: fetch.Result{ContentType: "image/jpeg"}}, "https://x/a.jpg", perr.ErrorCodeUpstream},
		{"not an image", &fakePut{}, fakeDL{res: fetch.Result{ContentType: "text/html", Body: []byte("<html></html>")}}, "https://x/a.jpg", perr.ErrorCodeUpstream},
		{"put fails", &fakePut{err: errors.New("boom")}, fakeDL{res: fetch.Result{ContentType: "image/jpeg", Body: []byte("x")}}, "https://x/a.jpg", perr.ErrorCodeUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := metrics.New()
			_, err := newStore(tc.put, tc.dl, reg).Upload(context.Background(), tc.url)
			if perr.CodeOf(err) != tc.want {
				t.Fatalf("code = %v, want %v (err=%v)", perr.CodeOf(err), tc.want, err)
			}
			assertUploads(t, reg, "error")
		})
	}
}

func TestStore_Disabled(t *testing.T) {
	cases := []Options{
		{},
		{AccessKeyID: "a", SecretAccessKey: "b"},
		{Bucket: "x", AccessKeyID: "a"},
	}
	for _, o := range cases {
		s, err := New(context.Background(), o, fakeDL{}, nil)
		if err != nil {
			t.Fatalf("New(%+v): %v", o, err)
		}
		if s.Enabled() {
			t.Fatalf("store with %+v should be disabled", o)
		}
		if _, err := s.Upload(context.Background(), "https://x/a.jpg"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			t.Fatalf("err = %v, want Unavailable", err)
		}
	}
	var nilStore *Store
	if nilStore.Enabled() {
		t.Fatalf("nil store reports enabled")
	}
}

func TestExtension(t *testing.T) {
	cases := []struct {
		url, ctype, want string
	}{
		{"https://x/a.JPG", "", "jpg"},
		{"https://x/a.jpeg?w=100", "image/png", "jpeg"},
		{"https://x/a.webp", "image/jpeg", "webp"},
		{"https://x/a.php", "image/png", "png"},
		{"https://x/a", "image/jpeg", "jpg"},
		{"https://x/a", "image/gif", "gif"},
		{"https://x/a", "image/svg+xml", "svg"},
		{"https://x/a.bmp", "image/bmp", "jpg"},
		{"https://x/a", "", "jpg"},
		{"::bad", "image/webp", "webp"},
	}
	for _, tc := range cases {
		if got := Extension(tc.url, tc.ctype); got != tc.want {
			t.Fatalf("Extension(%q, %q) = %q, want %q", tc.url, tc.ctype, got, tc.want)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType("image/webp; charset=binary", nil); got != "image/webp" {
		t.Fatalf("header = %q", got)
	}
	if got := ContentType("", pngBytes); got != "image/png" {
		t.Fatalf("sniffed = %q", got)
	}
	if got := ContentType("text/plain", []byte("hello")); strings.HasPrefix(got, "image/") {
		t.Fatalf("text sniffed as %q", got)
	}
}

func TestOptionsFrom(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "ak")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "sk")
	t.Setenv("AWS_BUCKET_NAME", "b")
	t.Setenv("AWS_REGION", "")
	o := withDefaults(OptionsFrom(config.New()))
	if !o.complete() || o.Region != defaultRegion || o.Prefix != defaultPrefix {
		t.Fatalf("options = %+v", o)
	}
}
