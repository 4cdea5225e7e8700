package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// normalizeJSON removes the timestamp field from JSON for comparison
func normalizeJSON(jsonStr string) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return nil, err
	}

	// Timestamp changes on every run
	delete(data, "timestamp")

	return data, nil
}

// compareWithGoldenFile compares output with a golden file, or rewrites the
// golden file when the -update flag is set
func compareWithGoldenFile(t *testing.T, output string, goldenPath string, update bool) {
	goldenFile := filepath.Join("testdata", goldenPath)

	if update {
		if err := os.MkdirAll(filepath.Dir(goldenFile), 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}

		normalized, err := normalizeJSON(output)
		if err != nil {
			t.Fatalf("failed to normalize JSON for golden file: %v", err)
		}

		prettyJSON, err := json.MarshalIndent(normalized, "", "  ")
		if err != nil {
			t.Fatalf("failed to marshal normalized JSON: %v", err)
		}

		if err := os.WriteFile(goldenFile, prettyJSON, 0644); err != nil {
			t.Fatalf("failed to write golden file: %v", err)
		}
		t.Logf("Updated golden file: %s", goldenFile)
		return
	}

	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("failed to read golden file %s (run with -update to create): %v", goldenFile, err)
	}

	actualNormalized, err := normalizeJSON(output)
	if err != nil {
		t.Fatalf("failed to normalize actual output: %v", err)
	}

	expectedNormalized, err := normalizeJSON(string(expected))
	if err != nil {
		t.Fatalf("failed to normalize expected output: %v", err)
	}

	if diff := cmp.Diff(expectedNormalized, actualNormalized); diff != "" {
		t.Errorf("output mismatch (-expected +actual):\n%s", diff)
	}
}
