package errors

import (
	"testing"
)

func TestValidateDocumentName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "deps", false},
		{"valid with dash", "my-graph", false},
		{"valid with underscore", "my_graph", false},
		{"valid with dot", "my.graph", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"path separator", "foo/bar", true},
		{"path traversal", "..secret", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "out/layout.svg", false},
		{"valid absolute", "/tmp/layout.svg", false},
		{"valid simple", "layout.dot", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "out\x00.svg", true},
		{"control char", "out\x01.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
