// Package callctl issues the one outbound request the session core needs
// from the telephony control plane: transfer a participant to dialtone.
package callctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/oryxlabs/voiceorder/agent/contract"
)

const (
	transferPath         = "/twirp/livekit.SIP/TransferSIPParticipant"
	maxResponseSizeBytes = 1 << 20
)

type Config struct {
	URL        string        `envconfig:"URL" split_words:"true" required:"true"`
	Token      string        `envconfig:"TOKEN" split_words:"true" required:"true"`
	TransferTo string        `envconfig:"TRANSFER_TO" split_words:"true" required:"true"`
	Timeout    time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Option customizes a Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client is bound to one call: the room name and participant identity are
// captured at construction and never re-resolved.
type Client struct {
	baseURL    string
	token      string
	transferTo string
	room       string
	identity   string
	httpClient *http.Client
}

var _ contractx.CallControl = (*Client)(nil)

func New(cfg Config, info contractx.SessionInfo, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("call control url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid call control url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("call control token is required")
	}
	transferTo := strings.TrimSpace(cfg.TransferTo)
	if transferTo == "" {
		return nil, errors.New("transfer destination is required")
	}
	if strings.TrimSpace(info.RoomName) == "" || strings.TrimSpace(info.ParticipantIdentity) == "" {
		return nil, errors.New("room name and participant identity are required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    baseURL,
		token:      token,
		transferTo: transferTo,
		room:       strings.TrimSpace(info.RoomName),
		identity:   strings.TrimSpace(info.ParticipantIdentity),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

type transferRequest struct {
	RoomName            string `json:"room_name"`
	ParticipantIdentity string `json:"participant_identity"`
	TransferTo          string `json:"transfer_to"`
	PlayDialtone        bool   `json:"play_dialtone"`
}

// TransferToDialtone asks the control plane to move the bound participant to
// the configured destination with dialtone. No response payload is consumed
// beyond success or failure.
func (c *Client) TransferToDialtone(ctx context.Context) error {
	body, err := json.Marshal(transferRequest{
		RoomName:            c.room,
		ParticipantIdentity: c.identity,
		TransferTo:          c.transferTo,
		PlayDialtone:        true,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal transfer request: %v", contractx.ErrCallControl, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transferPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build transfer request: %v", contractx.ErrCallControl, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute transfer request: %v", contractx.ErrCallControl, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
		return fmt.Errorf("%w: status=%d body=%s", contractx.ErrCallControl, resp.StatusCode, string(raw))
	}
	return nil
}
