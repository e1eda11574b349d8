package batch

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    []string
		wantErr bool
	}{
		{
			name:  "single string",
			input: "test123",
			want:  []string{"test123"},
		},
		{
			name:  "array of strings",
			input: []interface{}{"id1", "id2", "id3"},
			want:  []string{"id1", "id2", "id3"},
		},
		{
			name:    "nil input",
			input:   nil,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty array",
			input:   []interface{}{},
			wantErr: true,
		},
		{
			name:    "array with non-string",
			input:   []interface{}{"id1", 123, "id3"},
			wantErr: true,
		},
		{
			name:    "array with empty string",
			input:   []interface{}{"id1", "", "id3"},
			wantErr: true,
		},
		{
			name:    "invalid type",
			input:   123,
			wantErr: true,
		},
		{
			name:  "JSON string array",
			input: `["id1", "id2", "id3"]`,
			want:  []string{"id1", "id2", "id3"},
		},
		{
			name:  "JSON string single element array",
			input: `["single.pdf"]`,
			want:  []string{"single.pdf"},
		},
		{
			name:    "JSON string empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:  "invalid JSON string treated as literal",
			input: `[invalid json`,
			want:  []string{`[invalid json`},
		},
		{
			name:  "bracketed non-JSON string treated as literal",
			input: `[test] file.pdf`,
			want:  []string{`[test] file.pdf`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrArray(tt.input, "testParam")
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseStringOrArray() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !stringSliceEqual(got, tt.want) {
				t.Errorf("ParseStringOrArray() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessBatch(t *testing.T) {
	ids := []string{"id1", "id2", "id3"}

	fn := func(id string) (string, error) {
		if id == "id2" {
			return "", errors.New("failed to process id2")
		}
		return "processed " + id, nil
	}

	results := ProcessBatch(ids, fn)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Status != StatusSuccess {
		t.Errorf("results[0].Status = %s, want %s", results[0].Status, StatusSuccess)
	}
	if results[0].Result != "processed id1" {
		t.Errorf("results[0].Result = %s, want 'processed id1'", results[0].Result)
	}

	if results[1].Status != StatusError {
		t.Errorf("results[1].Status = %s, want %s", results[1].Status, StatusError)
	}
	if results[1].Error != "failed to process id2" {
		t.Errorf("results[1].Error = %s, want 'failed to process id2'", results[1].Error)
	}

	if results[2].Status != StatusSuccess {
		t.Errorf("results[2].Status = %s, want %s", results[2].Status, StatusSuccess)
	}
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		{ID: "id1", Status: StatusSuccess, Result: "archived"},
		{ID: "id2", Status: StatusSuccess, Result: "archived"},
		{ID: "id3", Status: StatusError, Error: "not found"},
	}

	output := FormatResults(results)

	var decoded struct {
		Total      int      `json:"total"`
		Successful int      `json:"successful"`
		Failed     int      `json:"failed"`
		Results    []Result `json:"results"`
	}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("failed to parse output JSON: %v", err)
	}

	if decoded.Total != 3 {
		t.Errorf("Total = %d, want 3", decoded.Total)
	}
	if decoded.Successful != 2 {
		t.Errorf("Successful = %d, want 2", decoded.Successful)
	}
	if decoded.Failed != 1 {
		t.Errorf("Failed = %d, want 1", decoded.Failed)
	}
	if len(decoded.Results) != 3 {
		t.Errorf("len(Results) = %d, want 3", len(decoded.Results))
	}
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
