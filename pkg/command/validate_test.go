package command

import (
	"strings"
	"testing"
)

func TestValidate_ValidCommand(t *testing.T) {
	cmd := New("https://example.com")

	r := Validate(cmd)
	if !r.IsValid() {
		t.Errorf("Validate = %+v, want valid", r)
	}
}

func TestValidate_URL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https url", "https://example.com/path", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"no scheme", "example.com", true},
		{"scheme without host", "https://", true},
		{"placeholder skips validation", "{{base_url}}/users", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := New(tt.url)
			r := Validate(cmd)
			if r.HasErrors() != tt.wantErr {
				t.Errorf("Validate(%q).HasErrors = %v, want %v (errors: %v)", tt.url, r.HasErrors(), tt.wantErr, r.Errors)
			}
		})
	}
}

func TestValidate_ConflictingOptions(t *testing.T) {
	cmd := New("https://example.com")
	cmd.AddOption("-s", nil)
	cmd.AddOption("-v", nil)

	r := Validate(cmd)
	if !r.HasErrors() {
		t.Fatalf("Validate = %+v, want -s/-v conflict error", r)
	}

	// Disabling one side clears the conflict.
	cmd.ToggleOption(0)
	if r := Validate(cmd); r.HasErrors() {
		t.Errorf("Validate after disable = %+v, want no errors", r)
	}
}

func TestValidate_HeadWithBody(t *testing.T) {
	cmd := New("https://example.com")
	cmd.AddOption("-I", nil)
	cmd.SetBody(RawBody("data"))

	r := Validate(cmd)
	if !r.HasErrors() {
		t.Errorf("Validate = %+v, want -I body conflict error", r)
	}
}

func TestValidate_MissingValues(t *testing.T) {
	empty := ""
	tests := []struct {
		name    string
		flag    string
		value   *string
		wantErr bool
	}{
		{"header without value", "-H", nil, true},
		{"header with blank value", "-H", &empty, true},
		{"long form without value", "--user-agent", nil, true},
		{"flag without value requirement", "-v", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := New("https://example.com")
			cmd.AddOption(tt.flag, tt.value)
			r := Validate(cmd)
			if r.HasErrors() != tt.wantErr {
				t.Errorf("Validate.HasErrors = %v, want %v (errors: %v)", r.HasErrors(), tt.wantErr, r.Errors)
			}
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Run("insecure", func(t *testing.T) {
		cmd := New("https://example.com")
		cmd.AddOption("-k", nil)
		r := Validate(cmd)
		if !r.HasWarnings() || r.HasErrors() {
			t.Errorf("Validate = %+v, want warning only", r)
		}
	})

	t.Run("long timeout", func(t *testing.T) {
		cmd := New("https://example.com")
		timeout := "600"
		cmd.AddOption("--max-time", &timeout)
		r := Validate(cmd)
		if !r.HasWarnings() {
			t.Fatalf("Validate = %+v, want timeout warning", r)
		}
		if !strings.Contains(r.Warnings[0], "600s") {
			t.Errorf("warning = %q, want timeout value included", r.Warnings[0])
		}
	})

	t.Run("timeout at threshold", func(t *testing.T) {
		cmd := New("https://example.com")
		timeout := "300"
		cmd.AddOption("--max-time", &timeout)
		if r := Validate(cmd); r.HasWarnings() {
			t.Errorf("Validate = %+v, want no warning at 300s", r)
		}
	})
}
