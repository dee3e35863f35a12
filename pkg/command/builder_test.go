package command

import (
	"strings"
	"testing"
)

func testEnv(pairs ...string) *Environment {
	env := NewEnvironment("test")
	for i := 0; i+1 < len(pairs); i += 2 {
		env.AddVariable(pairs[i], pairs[i+1], false)
	}
	return env
}

func TestBuild_SimpleCommand(t *testing.T) {
	cmd := New("https://example.com")

	got := Build(cmd, testEnv())
	if got != "curl https://example.com" {
		t.Errorf("Build = %q, want %q", got, "curl https://example.com")
	}
}

func TestBuild_ArgumentOrder(t *testing.T) {
	cmd := New("https://example.com")
	cmd.SetMethod(MethodPost)
	cmd.AddHeader("Content-Type", "application/json")
	cmd.SetBody(RawBody(`{"name":"test"}`))
	cmd.AddOption("-v", nil)

	got := Build(cmd, testEnv())
	want := `curl -v -X POST -H "Content-Type: application/json" -d {"name":"test"} https://example.com`
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_MethodFlag(t *testing.T) {
	tests := []struct {
		name   string
		method Method
		want   string
	}{
		{"GET is implicit", MethodGet, "curl https://example.com"},
		{"POST is explicit", MethodPost, "curl -X POST https://example.com"},
		{"DELETE is explicit", MethodDelete, "curl -X DELETE https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := New("https://example.com")
			cmd.SetMethod(tt.method)
			if got := Build(cmd, testEnv()); got != tt.want {
				t.Errorf("Build = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_QueryParams(t *testing.T) {
	cmd := New("https://example.com")
	cmd.AddQueryParam("q", "test query")

	got := Build(cmd, testEnv())
	want := "curl https://example.com?q=test%20query"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_QueryParamsAppendToExisting(t *testing.T) {
	cmd := New("https://example.com/search?page=1")
	cmd.AddQueryParam("q", "go")

	got := Build(cmd, testEnv())
	want := "curl https://example.com/search?page=1&q=go"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_DisabledEntriesSkipped(t *testing.T) {
	cmd := New("https://example.com")
	cmd.AddHeader("Authorization", "Bearer x")
	cmd.AddQueryParam("debug", "1")
	cmd.AddOption("-v", nil)
	cmd.ToggleHeader(0)
	cmd.ToggleQueryParam(0)
	cmd.ToggleOption(0)

	got := Build(cmd, testEnv())
	if got != "curl https://example.com" {
		t.Errorf("Build = %q, want disabled entries omitted", got)
	}
}

func TestBuild_OptionWithValue(t *testing.T) {
	cmd := New("https://example.com")
	timeout := "30"
	cmd.AddOption("--max-time", &timeout)

	got := Build(cmd, testEnv())
	want := "curl --max-time 30 https://example.com"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_Body(t *testing.T) {
	tests := []struct {
		name string
		body *Body
		want string
	}{
		{"nil body", nil, "curl https://example.com"},
		{"blank raw body omitted", RawBody("   "), "curl https://example.com"},
		{"raw body", RawBody("a=1"), "curl -d a=1 https://example.com"},
		{"binary body", BinaryBody("/tmp/payload.bin"), "curl --data-binary @/tmp/payload.bin https://example.com"},
		{
			"form body enabled items only",
			FormBody([]FormDataItem{
				{ID: "1", Key: "file", Value: "@photo.png", Enabled: true},
				{ID: "2", Key: "skip", Value: "me", Enabled: false},
				{ID: "3", Key: "name", Value: "test", Enabled: true},
			}),
			"curl -F file=@photo.png -F name=test https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := New("https://example.com")
			cmd.SetBody(tt.body)
			if got := Build(cmd, testEnv()); got != tt.want {
				t.Errorf("Build = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_NilEnvironment(t *testing.T) {
	cmd := New("{{base_url:https://fallback.example.com}}/v1")

	got := Build(cmd, nil)
	want := "curl https://fallback.example.com/v1"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestSubstitute(t *testing.T) {
	env := testEnv(
		"api_url", "https://api.example.com",
		"api_key", "secret-key",
	)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "known variables",
			input: "{{api_url}}/users?key={{api_key}}",
			want:  "https://api.example.com/users?key=secret-key",
		},
		{
			name:  "default used when missing",
			input: "{{base:https://default.example.com}}/users",
			want:  "https://default.example.com/users",
		},
		{
			name:  "variable wins over default",
			input: "{{api_key:fallback}}",
			want:  "secret-key",
		},
		{
			name:  "empty default",
			input: "x{{missing:}}y",
			want:  "xy",
		},
		{
			name:  "unknown without default stays literal",
			input: "{{nope}}/path",
			want:  "{{nope}}/path",
		},
		{
			name:  "no placeholders",
			input: "plain text",
			want:  "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.input, env); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubstitute_SinglePass(t *testing.T) {
	env := testEnv("a", "{{b}}", "b", "never")

	// The substituted value is not re-scanned.
	got := Substitute("{{a}}", env)
	if got != "{{b}}" {
		t.Errorf("Substitute = %q, want %q", got, "{{b}}")
	}
}

func TestSubstitute_FirstMatchWins(t *testing.T) {
	env := NewEnvironment("dup")
	env.AddVariable("key", "first", false)
	env.AddVariable("key", "second", false)

	if got := Substitute("{{key}}", env); got != "first" {
		t.Errorf("Substitute = %q, want %q", got, "first")
	}
}

func TestFormatArgs_Wrapping(t *testing.T) {
	args := []string{"curl"}
	for i := 0; i < 6; i++ {
		args = append(args, "-H", "X-Custom-Header-Name: some-fairly-long-value-here")
	}
	args = append(args, "https://example.com")

	got := FormatArgs(args)
	if !strings.Contains(got, " \\\n      ") {
		t.Errorf("FormatArgs = %q, want wrapped continuation", got)
	}
	got2, err := SplitArgs(got)
	if err != nil {
		t.Fatalf("SplitArgs error = %v", err)
	}
	if len(got2) != len(args) {
		t.Errorf("round trip length = %d, want %d", len(got2), len(args))
	}
}

func TestFormatArgs_Quoting(t *testing.T) {
	got := FormatArgs([]string{"curl", "-H", "Accept: text/plain", "https://example.com"})
	want := `curl -H "Accept: text/plain" https://example.com`
	if got != want {
		t.Errorf("FormatArgs = %q, want %q", got, want)
	}
}
