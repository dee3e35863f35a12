package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackcoderx/kurl/pkg/command"
)

func TestInit_CreatesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), FolderName)
	s := NewStore(dir)

	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, name := range []string{configFile, templatesFile, environmentsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s after Init: %v", name, err)
		}
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d, want 50", cfg.HistoryLimit)
	}

	envs, err := s.LoadEnvironments()
	if err != nil {
		t.Fatalf("LoadEnvironments: %v", err)
	}
	if len(envs) != 1 || envs[0].Name != "Default" {
		t.Errorf("environments = %+v, want one named Default", envs)
	}
}

func TestInit_PreservesExistingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), FolderName)
	s := NewStore(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	cfg, _ := s.LoadConfig()
	cfg.HistoryLimit = 7
	if err := s.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	// A second Init must not reset anything.
	if err := s.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	cfg, _ = s.LoadConfig()
	if cfg.HistoryLimit != 7 {
		t.Errorf("HistoryLimit = %d, want 7 preserved", cfg.HistoryLimit)
	}
}

func TestTemplates_RoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), FolderName))

	cmd := command.New("https://api.example.com/{{version:v1}}/users")
	cmd.SetMethod(command.MethodPost)
	cmd.AddHeader("Content-Type", "application/json")
	cmd.SetBody(command.RawBody(`{"name":"x"}`))
	timeout := "30"
	cmd.AddOption("--max-time", &timeout)

	saved := command.NewTemplate("create user", cmd)
	if err := s.SaveTemplates([]command.Template{saved}); err != nil {
		t.Fatalf("SaveTemplates: %v", err)
	}

	loaded, err := s.LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("templates = %d, want 1", len(loaded))
	}
	got := loaded[0]
	if got.Name != "create user" {
		t.Errorf("Name = %q, want %q", got.Name, "create user")
	}
	if got.Command.Method != command.MethodPost {
		t.Errorf("Method = %q, want POST", got.Command.Method)
	}
	if len(got.Command.Options) != 1 || got.Command.Options[0].Value == nil || *got.Command.Options[0].Value != "30" {
		t.Errorf("options = %+v, want --max-time 30", got.Command.Options)
	}
	if got.Command.Body == nil || got.Command.Body.Kind != command.BodyRaw {
		t.Errorf("body = %+v, want raw", got.Command.Body)
	}
}

func TestEnvironments_RoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), FolderName))

	env := command.NewEnvironment("staging")
	env.AddVariable("base_url", "https://staging.example.com", false)
	env.AddVariable("token", "s3cret", true)

	if err := s.SaveEnvironments([]command.Environment{*env}); err != nil {
		t.Fatalf("SaveEnvironments: %v", err)
	}

	loaded, err := s.LoadEnvironments()
	if err != nil {
		t.Fatalf("LoadEnvironments: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name != "staging" {
		t.Fatalf("environments = %+v, want staging", loaded)
	}
	if v, ok := loaded[0].Lookup("base_url"); !ok || v != "https://staging.example.com" {
		t.Errorf("base_url = %q, %v", v, ok)
	}
	if len(loaded[0].Variables) != 2 || !loaded[0].Variables[1].Secret {
		t.Errorf("variables = %+v, want secret flag preserved", loaded[0].Variables)
	}
}

func TestLoad_MissingFilesYieldEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nowhere"))

	tpls, err := s.LoadTemplates()
	if err != nil || len(tpls) != 0 {
		t.Errorf("LoadTemplates = %v, %v, want empty, nil", tpls, err)
	}
	envs, err := s.LoadEnvironments()
	if err != nil || len(envs) != 0 {
		t.Errorf("LoadEnvironments = %v, %v, want empty, nil", envs, err)
	}
	cfg, err := s.LoadConfig()
	if err != nil || cfg.HistoryLimit != 50 {
		t.Errorf("LoadConfig = %+v, %v, want defaults", cfg, err)
	}
}
