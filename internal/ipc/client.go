package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/icontile/internal/organize"
	"github.com/1broseidon/icontile/internal/runtimepath"
)

// Client handles IPC communication with the daemon.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		// Organize passes can take a while against a slow desktop.
		timeout: 30 * time.Second,
	}
}

func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

// Organize runs an organize pass on the daemon.
func (c *Client) Organize() (*organize.Summary, error) {
	resp, err := c.sendRequest(&Request{Command: CommandOrganize})
	if err != nil {
		return nil, err
	}
	var summary organize.Summary
	if err := json.Unmarshal(resp.Data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary: %w", err)
	}
	return &summary, nil
}

// Undo restores the pre-organize snapshot.
func (c *Client) Undo() (int, error) {
	resp, err := c.sendRequest(&Request{Command: CommandUndo})
	if err != nil {
		return 0, err
	}
	var data RestoreData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return 0, fmt.Errorf("failed to parse restore data: %w", err)
	}
	return data.Restored, nil
}

func (c *Client) layoutRequest(cmd CommandType, payload LayoutPayload) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout payload: %w", err)
	}
	return c.sendRequest(&Request{Command: cmd, Payload: body})
}

// SaveLayout snapshots current icon positions under name.
func (c *Client) SaveLayout(name string) (*LayoutInfo, error) {
	resp, err := c.layoutRequest(CommandSaveLayout, LayoutPayload{Name: name})
	if err != nil {
		return nil, err
	}
	var info LayoutInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse layout info: %w", err)
	}
	return &info, nil
}

// RestoreLayout applies a saved layout and reports how many icons moved.
func (c *Client) RestoreLayout(name string) (int, error) {
	resp, err := c.layoutRequest(CommandRestoreLayout, LayoutPayload{Name: name})
	if err != nil {
		return 0, err
	}
	var data RestoreData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return 0, fmt.Errorf("failed to parse restore data: %w", err)
	}
	return data.Restored, nil
}

// DeleteLayout removes a saved layout.
func (c *Client) DeleteLayout(name string) error {
	_, err := c.layoutRequest(CommandDeleteLayout, LayoutPayload{Name: name})
	return err
}

// RenameLayout renames a saved layout.
func (c *Client) RenameLayout(oldName, newName string) error {
	_, err := c.layoutRequest(CommandRenameLayout, LayoutPayload{Name: oldName, NewName: newName})
	return err
}

// ListLayouts retrieves saved layouts.
func (c *Client) ListLayouts() (*LayoutsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListLayouts})
	if err != nil {
		return nil, err
	}
	var data LayoutsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse layouts data: %w", err)
	}
	return &data, nil
}

// ApplyPreset switches the daemon's active preset.
func (c *Client) ApplyPreset(id string) error {
	body, err := json.Marshal(PresetPayload{ID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal preset payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandApplyPreset, Payload: body})
	return err
}

// ListPresets retrieves the preset catalog.
func (c *Client) ListPresets() (*PresetsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListPresets})
	if err != nil {
		return nil, err
	}
	var data PresetsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse presets data: %w", err)
	}
	return &data, nil
}

// GetStatus retrieves daemon status.
func (c *Client) GetStatus() (*organize.Status, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}
	var status organize.Status
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// Reload asks the daemon to reload its configuration.
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// Ping checks if the daemon is responding.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
