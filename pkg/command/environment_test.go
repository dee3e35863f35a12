package command

import "testing"

func TestEnvironment_Lookup(t *testing.T) {
	env := NewEnvironment("dev")
	env.AddVariable("host", "localhost", false)
	env.AddVariable("host", "shadowed", false)
	env.AddVariable("token", "abc", true)

	tests := []struct {
		key       string
		want      string
		wantFound bool
	}{
		{"host", "localhost", true},
		{"token", "abc", true},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, found := env.Lookup(tt.key)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("Lookup(%q) = %q, %v, want %q, %v", tt.key, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestEnvironment_NilLookup(t *testing.T) {
	var env *Environment
	if _, found := env.Lookup("anything"); found {
		t.Error("nil environment lookup found a value")
	}
}

func TestEnvironment_SetVariable(t *testing.T) {
	env := NewEnvironment("dev")
	env.SetVariable("host", "localhost", false)
	env.SetVariable("host", "example.com", false)

	if len(env.Variables) != 1 {
		t.Fatalf("variables = %d, want 1 after update", len(env.Variables))
	}
	if v, _ := env.Lookup("host"); v != "example.com" {
		t.Errorf("host = %q, want %q", v, "example.com")
	}
}

func TestEnvironment_RemoveVariable(t *testing.T) {
	env := NewEnvironment("dev")
	env.AddVariable("a", "1", false)
	env.AddVariable("b", "2", false)
	env.AddVariable("a", "3", false)

	if !env.RemoveVariable("a") {
		t.Fatal("RemoveVariable(a) = false")
	}
	if len(env.Variables) != 1 || env.Variables[0].Key != "b" {
		t.Errorf("variables = %+v, want only b", env.Variables)
	}
	if env.RemoveVariable("a") {
		t.Error("RemoveVariable(a) second call = true, want false")
	}
}

func TestEnvironment_RemoveVariableAt(t *testing.T) {
	env := NewEnvironment("dev")
	env.AddVariable("a", "1", false)

	if env.RemoveVariableAt(3) {
		t.Error("RemoveVariableAt(3) = true, want false")
	}
	if !env.RemoveVariableAt(0) {
		t.Error("RemoveVariableAt(0) = false")
	}
	if len(env.Variables) != 0 {
		t.Errorf("variables = %d, want 0", len(env.Variables))
	}
}
