package utils

import (
	"errors"
	"testing"
)

func TestValidateSheetURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{
			name:    "Valid sheet URL",
			url:     "https://docs.google.com/spreadsheets/d/abc/edit#gid=0",
			wantErr: nil,
		},
		{
			name:    "Empty URL",
			url:     "",
			wantErr: ErrSheetNotConfigured,
		},
		{
			name:    "Not a URL",
			url:     "not a url",
			wantErr: ErrInvalidSheetURL,
		},
		{
			name:    "FTP scheme",
			url:     "ftp://docs.google.com/spreadsheets/d/abc",
			wantErr: ErrInvalidSheetURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSheetURL(tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSheetURL(%q) error = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAssetName(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{"Plain image", "photo1.jpg", false},
		{"Dashes and underscores", "our_trip-2025.png", false},
		{"Empty", "", true},
		{"Parent traversal", "../secret.txt", true},
		{"Double dot inside", "a..b", true},
		{"Nested path", "dir/file.png", true},
		{"Windows separator", `dir\file.png`, true},
		{"Hidden file", ".env", true},
		{"Spaces", "my photo.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetName(tt.file)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetName(%q) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFilename) {
				t.Errorf("expected ErrInvalidFilename, got %v", err)
			}
		})
	}
}
