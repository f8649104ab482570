// Package ipc implements the line-JSON unix socket protocol between the CLI
// and the daemon. Each connection carries one request and one response.
package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types.
type CommandType string

const (
	CommandOrganize      CommandType = "ORGANIZE"
	CommandUndo          CommandType = "UNDO"
	CommandSaveLayout    CommandType = "SAVE_LAYOUT"
	CommandRestoreLayout CommandType = "RESTORE_LAYOUT"
	CommandDeleteLayout  CommandType = "DELETE_LAYOUT"
	CommandRenameLayout  CommandType = "RENAME_LAYOUT"
	CommandListLayouts   CommandType = "LIST_LAYOUTS"
	CommandApplyPreset   CommandType = "APPLY_PRESET"
	CommandListPresets   CommandType = "LIST_PRESETS"
	CommandGetStatus     CommandType = "GET_STATUS"
	CommandReload        CommandType = "RELOAD"
)

// Request represents an IPC request from client to server.
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client.
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// LayoutPayload names a saved layout for save/restore/delete/rename.
type LayoutPayload struct {
	Name    string `json:"name"`
	NewName string `json:"new_name,omitempty"`
}

// PresetPayload names a preset for APPLY_PRESET.
type PresetPayload struct {
	ID string `json:"id"`
}

// LayoutInfo is one saved layout in LIST_LAYOUTS output.
type LayoutInfo struct {
	Name      string `json:"name"`
	Icons     int    `json:"icons"`
	CreatedAt string `json:"created_at"`
}

// LayoutsData is the LIST_LAYOUTS response body.
type LayoutsData struct {
	Layouts []LayoutInfo `json:"layouts"`
}

// PresetInfo is one preset in LIST_PRESETS output.
type PresetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Dynamic     bool   `json:"dynamic,omitempty"`
	Groups      int    `json:"groups"`
	Active      bool   `json:"active,omitempty"`
}

// PresetsData is the LIST_PRESETS response body.
type PresetsData struct {
	Presets []PresetInfo `json:"presets"`
}

// RestoreData is the RESTORE_LAYOUT/UNDO response body.
type RestoreData struct {
	Restored int `json:"restored"`
}

// NewOKResponse creates a successful response with optional data.
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message.
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes.
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
