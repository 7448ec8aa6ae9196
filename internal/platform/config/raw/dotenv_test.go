package raw

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "test.env")
	body := "RAWTEST_FROM_FILE=hello\nRAWTEST_PRESET=file\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RAWTEST_PRESET", "env")
	// t.Setenv restores on cleanup only for keys it set
	t.Cleanup(func() { _ = os.Unsetenv("RAWTEST_FROM_FILE") })

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"), p)
	if err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != p {
		t.Fatalf("loaded = %v, want [%s]", loaded, p)
	}

	c := New().Prefix("RAWTEST_")
	if got := c.Get("FROM_FILE", ""); got != "hello" {
		t.Fatalf("FROM_FILE = %q, want hello", got)
	}
	if got := c.Get("PRESET", ""); got != "env" {
		t.Fatalf("PRESET = %q, want env (process env wins)", got)
	}
}

func TestLoadDotEnv_DirectoryRejected(t *testing.T) {
	if _, err := LoadDotEnv(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory path")
	}
}
