package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
	if !cfg.Watch {
		t.Error("expected watch to be true")
	}
}

func TestMigrateLegacyPath(t *testing.T) {
	cfg := &Config{
		Path: "./test_docs",
	}
	cfg.migrateLegacyPath()

	if len(cfg.Folders) != 1 {
		t.Fatalf("expected 1 folder after migration, got %d", len(cfg.Folders))
	}

	absExpected, _ := filepath.Abs("./test_docs")
	if cfg.Folders[0].Path != absExpected {
		t.Errorf("expected path %s, got %s", absExpected, cfg.Folders[0].Path)
	}
	if cfg.Folders[0].Alias != "test_docs" {
		t.Errorf("expected alias test_docs, got %s", cfg.Folders[0].Alias)
	}
}

func TestAddFolder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Folders = nil

	if err := cfg.AddFolder("./docs", "MyDocs", "", false, nil); err != nil {
		t.Fatalf("AddFolder failed: %v", err)
	}
	// same path and ref again is a no-op
	if err := cfg.AddFolder("./docs", "Other", "", false, nil); err != nil {
		t.Fatalf("AddFolder failed: %v", err)
	}

	if len(cfg.Folders) != 1 {
		t.Fatalf("expected 1 folder, got %d", len(cfg.Folders))
	}
	if cfg.Folders[0].Alias != "MyDocs" {
		t.Errorf("expected alias MyDocs, got %s", cfg.Folders[0].Alias)
	}

	if err := cfg.AddFolder("./other", "MyDocs", "", false, nil); err == nil {
		t.Error("expected duplicate alias to be rejected")
	}

	if err := cfg.AddFolder("./docs", "", "v1.0", false, nil); err != nil {
		t.Fatalf("AddFolder with git ref failed: %v", err)
	}
	if got := cfg.Folders[1].Alias; got != "docs@v1.0" {
		t.Errorf("expected alias docs@v1.0, got %s", got)
	}
	if cfg.Folders[1].Writable() {
		t.Error("expected git ref folder to be read-only")
	}
}

func TestFolderByAlias(t *testing.T) {
	cfg := &Config{Folders: []Folder{{Alias: "a"}, {Alias: "b"}}}

	if i, ok := cfg.FolderByAlias("b"); !ok || i != 1 {
		t.Errorf("expected index 1, got %d (found=%v)", i, ok)
	}
	if _, ok := cfg.FolderByAlias("c"); ok {
		t.Error("expected alias c to be unknown")
	}
}

func TestRemoveAndUpdateFolder(t *testing.T) {
	cfg := &Config{Folders: []Folder{{Alias: "a"}, {Alias: "b"}}}

	cfg.UpdateFolderByIndex(1, "renamed", true, []string{"*.tmp"})
	if f := cfg.Folders[1]; f.Alias != "renamed" || !f.ReadOnly || len(f.Exclude) != 1 {
		t.Errorf("update failed: %+v", f)
	}

	cfg.RemoveFolderByIndex(0)
	cfg.RemoveFolderByIndex(5)
	if len(cfg.Folders) != 1 || cfg.Folders[0].Alias != "renamed" {
		t.Errorf("remove failed: %+v", cfg.Folders)
	}
}

func TestIsExcluded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude = []string{".git", "node_modules"}

	if !cfg.IsExcluded("/path/to/.git") {
		t.Error("expected .git to be excluded")
	}
	if !cfg.IsExcluded("/path/to/node_modules") {
		t.Error("expected node_modules to be excluded")
	}
	if cfg.IsExcluded("/path/to/README.md") {
		t.Error("expected README.md NOT to be excluded")
	}
}

func TestIsFolderExcluded(t *testing.T) {
	cfg := DefaultConfig()
	excludes := []string{"*.log", "build"}

	if !cfg.IsFolderExcluded("logs/app.log", excludes) {
		t.Error("expected app.log to be excluded")
	}
	if !cfg.IsFolderExcluded(filepath.Join("build", "out.bin"), excludes) {
		t.Error("expected build/out.bin to be excluded")
	}
	if cfg.IsFolderExcluded("src/main.go", excludes) {
		t.Error("expected src/main.go NOT to be excluded")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.configPath = tmpFile
	cfg.Port = 9999
	cfg.Folders = []Folder{{Path: "/tmp", Alias: "Temp", ReadOnly: true}}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg2, err := Load(Overrides{ConfigFile: tmpFile, LogLevel: "debug", NoWatch: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg2.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg2.Port)
	}
	if len(cfg2.Folders) != 1 || cfg2.Folders[0].Alias != "Temp" || !cfg2.Folders[0].ReadOnly {
		t.Errorf("folder loading failed: %+v", cfg2.Folders)
	}
	if cfg2.LogLevel != "debug" {
		t.Errorf("expected log level override, got %s", cfg2.LogLevel)
	}
	if cfg2.Watch {
		t.Error("expected watch to be disabled by override")
	}
	if cfg2.GetConfigFilePath() != tmpFile {
		t.Errorf("expected config path %s, got %s", tmpFile, cfg2.GetConfigFilePath())
	}
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	_, err := Load(Overrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadPathOverride(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	cfg := DefaultConfig()
	cfg.configPath = cfgFile
	cfg.Folders = []Folder{{Path: "/srv", Alias: "srv"}}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(Overrides{ConfigFile: cfgFile, Path: dir, Port: 7070})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Folders) != 1 || loaded.Folders[0].Path != dir {
		t.Errorf("expected --path to replace folders, got %+v", loaded.Folders)
	}
	if loaded.Port != 7070 {
		t.Errorf("expected port 7070, got %d", loaded.Port)
	}
}
