// Package panel клиент REST API внешней хостинг-панели.
// Панель владеет жизненным циклом серверов (установка, консоль, бэкапы);
// мы только создаём/изменяем серверы и читаем их состояние.
package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend/internal/app/config"
)

// CreateServerParams параметры провижининга нового сервера
type CreateServerParams struct {
	Name           string            `json:"name"`
	UserEmail      string            `json:"user_email"`
	LocationName   string            `json:"location"`
	DockerImage    string            `json:"docker_image"`
	StartupCommand string            `json:"startup_command"`
	CPUPercent     int               `json:"cpu_percent"`
	RAMMb          int               `json:"ram_mb"`
	DiskMb         int               `json:"disk_mb"`
	Environment    map[string]string `json:"environment,omitempty"`
}

// Server сервер в представлении панели
type Server struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Status     string `json:"status"` // installing, running, offline, suspended
	Node       string `json:"node"`
	Allocation struct {
		IP   string `json:"ip"`
		Port int    `json:"port"`
	} `json:"allocation"`
	Resources struct {
		CPUPercent float64 `json:"cpu_percent"`
		MemoryMb   int     `json:"memory_mb"`
		DiskMb     int     `json:"disk_mb"`
	} `json:"resources"`
}

// Backup бэкап сервера в панели
type Backup struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Bytes     int64     `json:"bytes"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateBuildParams изменение лимитов железа существующего сервера
type UpdateBuildParams struct {
	CPUPercent int `json:"cpu_percent"`
	RAMMb      int `json:"ram_mb"`
	DiskMb     int `json:"disk_mb"`
}

// Error ответ панели с ошибкой
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("panel responded %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	cfg    config.PanelConfig
	client *http.Client
}

func NewClient(cfg config.PanelConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateServer создаёт сервер в панели и возвращает его идентификатор
func (c *Client) CreateServer(ctx context.Context, params CreateServerParams) (*Server, error) {
	var server Server
	if err := c.do(ctx, http.MethodPost, "/api/application/servers", params, &server); err != nil {
		return nil, err
	}
	if server.Identifier == "" {
		return nil, fmt.Errorf("panel returned server without identifier")
	}
	return &server, nil
}

// GetServer читает актуальное состояние сервера
func (c *Client) GetServer(ctx context.Context, identifier string) (*Server, error) {
	var server Server
	if err := c.do(ctx, http.MethodGet, "/api/application/servers/"+identifier, nil, &server); err != nil {
		return nil, err
	}
	return &server, nil
}

// DeleteServer удаляет сервер из панели
func (c *Client) DeleteServer(ctx context.Context, identifier string) error {
	return c.do(ctx, http.MethodDelete, "/api/application/servers/"+identifier, nil, nil)
}

// UpdateServerBuild применяет новые лимиты железа (после UPGRADE заказа)
func (c *Client) UpdateServerBuild(ctx context.Context, identifier string, params UpdateBuildParams) error {
	return c.do(ctx, http.MethodPatch, "/api/application/servers/"+identifier+"/build", params, nil)
}

// SendPowerSignal отправляет сигнал управления: start, stop, restart, kill
func (c *Client) SendPowerSignal(ctx context.Context, identifier, signal string) error {
	body := map[string]string{"signal": signal}
	return c.do(ctx, http.MethodPost, "/api/application/servers/"+identifier+"/power", body, nil)
}

// ListBackups возвращает бэкапы сервера
func (c *Client) ListBackups(ctx context.Context, identifier string) ([]Backup, error) {
	var resp struct {
		Backups []Backup `json:"backups"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/application/servers/"+identifier+"/backups", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Backups, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cannot marshal panel request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("cannot build panel request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("panel request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &Error{StatusCode: resp.StatusCode, Detail: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("cannot decode panel response: %w", err)
		}
	}
	return nil
}
