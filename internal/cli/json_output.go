// json_output.go - JSON output support for scripting.
//
// Provides a standardized JSON envelope for all CLI commands.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
// Human-readable messages should go to stderr when JSON mode is enabled.
func (r *JSONResponse) Print() error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// StderrPrint prints a message to stderr (for human-readable output in JSON mode).
func StderrPrint(format string, args ...interface{}) {
	fmt.Fprintf(stderr, format, args...)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// ConvertData represents the data returned by the convert command.
type ConvertData struct {
	Category  string  `json:"category"`
	Value     float64 `json:"value"`
	FromUnit  string  `json:"from_unit"`
	ToUnit    string  `json:"to_unit"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
}

// UnitsData represents the units of one category.
type UnitsData struct {
	Category string    `json:"category"`
	Strategy string    `json:"strategy"`
	BaseUnit string    `json:"base_unit,omitempty"`
	Units    []string  `json:"units"`
	Default  [2]string `json:"default_pair"`
}

// ExplainData represents the data returned by the explain command.
type ExplainData struct {
	Category string `json:"category"`
	Markdown string `json:"markdown"`
}

// SettingsImportData represents the result of a settings import.
type SettingsImportData struct {
	Path          string `json:"path"`
	Theme         bool   `json:"theme"`
	Favorites     bool   `json:"favorites"`
	FavoriteCount int    `json:"favorite_count"`
	DecimalPlaces bool   `json:"decimal_places"`
}

// FileData is returned by commands that write a file.
type FileData struct {
	Path    string `json:"path"`
	Entries int    `json:"entries,omitempty"`
}

// ConfigValueData is returned by "config get" and "config set".
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
