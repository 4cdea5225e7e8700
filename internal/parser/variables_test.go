package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zclconf/go-cty/cty"
)

func TestLoadVariables(t *testing.T) {
	tmpDir := t.TempDir()

	// 1. variables.tf with defaults
	varsContent := `
variable "location" {
  default = "eastus2"
}
variable "name_prefix" {
  default = "foundry"
}
variable "enable_diagnostics" {
  default = true
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, "variables.tf"), []byte(varsContent), 0644); err != nil {
		t.Fatal(err)
	}

	// 2. terraform.tfvars overriding one default
	if err := os.WriteFile(filepath.Join(tmpDir, "terraform.tfvars"), []byte(`
location = "westus3"
`), 0644); err != nil {
		t.Fatal(err)
	}

	// 3. custom tfvars
	customPath := filepath.Join(tmpDir, "prod.tfvars")
	if err := os.WriteFile(customPath, []byte(`
name_prefix = "foundry-prod"
`), 0644); err != nil {
		t.Fatal(err)
	}

	// 4. JSON tfvars
	jsonPath := filepath.Join(tmpDir, "prod.tfvars.json")
	if err := os.WriteFile(jsonPath, []byte(`{"location": "northeurope"}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("Default Loading", func(t *testing.T) {
		vars, err := LoadVariables(tmpDir, "")
		if err != nil {
			t.Fatalf("LoadVariables failed: %v", err)
		}

		checkVar(t, vars, "location", "westus3") // terraform.tfvars wins
		checkVar(t, vars, "name_prefix", "foundry")

		val, ok := vars["enable_diagnostics"]
		if !ok || val.Type() != cty.Bool || !val.True() {
			t.Errorf("enable_diagnostics = %#v, want true", val)
		}
	})

	t.Run("Explicit TFVars Wins", func(t *testing.T) {
		vars, err := LoadVariables(tmpDir, customPath)
		if err != nil {
			t.Fatalf("LoadVariables failed: %v", err)
		}

		checkVar(t, vars, "name_prefix", "foundry-prod")
		// With an explicit tfvars path the directory defaults still apply
		// but terraform.tfvars does not.
		checkVar(t, vars, "location", "eastus2")
	})

	t.Run("JSON TFVars", func(t *testing.T) {
		vars, err := LoadVariables(tmpDir, jsonPath)
		if err != nil {
			t.Fatalf("LoadVariables failed: %v", err)
		}

		checkVar(t, vars, "location", "northeurope")
	})
}

func TestLoadVariables_MalformedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.tfvars.json")
	if err := os.WriteFile(path, []byte(`["not", "an", "object"]`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadVariables(tmpDir, path); err == nil {
		t.Error("expected error for non-object tfvars JSON")
	}
}

func checkVar(t *testing.T, vars map[string]cty.Value, name, want string) {
	t.Helper()
	val, ok := vars[name]
	if !ok {
		t.Fatalf("variable %q not loaded", name)
	}
	if val.Type() != cty.String {
		t.Fatalf("variable %q has type %s, want string", name, val.Type().FriendlyName())
	}
	if got := val.AsString(); got != want {
		t.Errorf("variable %q = %q, want %q", name, got, want)
	}
}
