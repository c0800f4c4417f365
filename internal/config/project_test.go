package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Stories.Path != DefaultStoriesPath {
		t.Errorf("Stories.Path = %q, want %q", cfg.Stories.Path, DefaultStoriesPath)
	}
	if !reflect.DeepEqual(cfg.Stories.Search, DefaultStoriesSearch) {
		t.Errorf("Stories.Search = %v, want %v", cfg.Stories.Search, DefaultStoriesSearch)
	}
	if cfg.Tests.Dir != "tests" || cfg.Tests.File != "acceptance.test.js" {
		t.Errorf("Tests = %+v, want tests/acceptance.test.js", cfg.Tests)
	}
	if cfg.Strategy.ShortTextThreshold != 50 {
		t.Errorf("ShortTextThreshold = %d, want 50", cfg.Strategy.ShortTextThreshold)
	}

	// Mutating the returned search list must not leak into the defaults.
	cfg.Stories.Search[0] = "changed.md"
	if DefaultStoriesSearch[0] == "changed.md" {
		t.Error("Default() shares the DefaultStoriesSearch backing array")
	}
}

func TestWriteAndLoadProjectConfig(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, DirName, FileName)

	cfg := &ProjectConfig{
		Stories:  StoriesConfig{Path: "stories.md"},
		Tests:    TestsConfig{Dir: "spec"},
		Keywords: KeywordsConfig{File: "kw.yaml"},
	}
	if err := WriteProjectConfig(path, cfg); err != nil {
		t.Fatalf("WriteProjectConfig(): %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if !strings.HasPrefix(string(data), "# ccxp configuration") {
		t.Errorf("config file missing header: %q", string(data))
	}

	loaded, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("LoadProjectConfig(): %v", err)
	}

	if loaded.Stories.Path != "stories.md" {
		t.Errorf("Stories.Path = %q, want stories.md", loaded.Stories.Path)
	}
	if loaded.Tests.Dir != "spec" {
		t.Errorf("Tests.Dir = %q, want spec", loaded.Tests.Dir)
	}
	if loaded.Tests.File != DefaultTestsFile {
		t.Errorf("Tests.File = %q, want default %q", loaded.Tests.File, DefaultTestsFile)
	}
	if want := filepath.Join(tmp, "kw.yaml"); loaded.Keywords.File != want {
		t.Errorf("Keywords.File = %q, want %q", loaded.Keywords.File, want)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	tmp := t.TempDir()

	if _, err := LoadProjectConfig(filepath.Join(tmp, "missing.yaml")); err == nil {
		t.Error("LoadProjectConfig(missing) error = nil, want error")
	}

	bad := filepath.Join(tmp, "bad.yaml")
	if err := os.WriteFile(bad, []byte("stories: [not, a, map"), 0o644); err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}
	if _, err := LoadProjectConfig(bad); err == nil {
		t.Error("LoadProjectConfig(bad) error = nil, want error")
	}
}

func TestResolve(t *testing.T) {
	t.Run("no config falls back to defaults", func(t *testing.T) {
		tmp := t.TempDir()
		path, cfg, err := Resolve(tmp)
		if err != nil {
			t.Fatalf("Resolve(): %v", err)
		}
		if path != filepath.Join(tmp, DirName, FileName) {
			t.Errorf("path = %q", path)
		}
		if cfg.Stories.Path != DefaultStoriesPath {
			t.Errorf("Stories.Path = %q, want default", cfg.Stories.Path)
		}
	})

	t.Run("finds config in parent directory", func(t *testing.T) {
		tmp := t.TempDir()
		if err := WriteProjectConfig(filepath.Join(tmp, DirName, FileName), &ProjectConfig{
			Tests: TestsConfig{Dir: "acceptance"},
		}); err != nil {
			t.Fatalf("WriteProjectConfig(): %v", err)
		}
		nested := filepath.Join(tmp, "a", "b")
		if err := os.MkdirAll(nested, 0o755); err != nil {
			t.Fatalf("MkdirAll(): %v", err)
		}

		path, cfg, err := Resolve(nested)
		if err != nil {
			t.Fatalf("Resolve(): %v", err)
		}
		if path != filepath.Join(tmp, DirName, FileName) {
			t.Errorf("path = %q, want config in %s", path, tmp)
		}
		if cfg.Tests.Dir != "acceptance" {
			t.Errorf("Tests.Dir = %q, want acceptance", cfg.Tests.Dir)
		}
	})

	t.Run("empty .ccxp directory uses defaults", func(t *testing.T) {
		tmp := t.TempDir()
		if err := os.MkdirAll(filepath.Join(tmp, DirName), 0o755); err != nil {
			t.Fatalf("MkdirAll(): %v", err)
		}
		_, cfg, err := Resolve(tmp)
		if err != nil {
			t.Fatalf("Resolve(): %v", err)
		}
		if cfg.Tests.Dir != DefaultTestsDir {
			t.Errorf("Tests.Dir = %q, want default", cfg.Tests.Dir)
		}
	})
}

func TestMissingFileError(t *testing.T) {
	var err error = &MissingFileError{Path: "docs/stories.md", Usage: "ccxp accept [path]"}

	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatal("errors.As(*MissingFileError) = false")
	}
	msg := err.Error()
	if !strings.Contains(msg, "docs/stories.md") || !strings.Contains(msg, "Usage: ccxp accept [path]") {
		t.Errorf("Error() = %q, want path and usage", msg)
	}

	searched := (&MissingFileError{Candidates: []string{"a.md", "b.md"}}).Error()
	if !strings.Contains(searched, "a.md, b.md") {
		t.Errorf("Error() = %q, want candidate list", searched)
	}
}
