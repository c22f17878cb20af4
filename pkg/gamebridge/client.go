// Package gamebridge is the client for the subsystems the war core
// collaborates with but never owns: combat-power computation (buildings,
// cards, specimen evolution), NFT custody/staking, and the value-transfer
// primitives of the game currency. The war modules depend on the interfaces
// below; the HTTP client here is the production implementation against the
// hosting game platform.
package gamebridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"colonywars/pkg/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// PowerVector is the combat power of one colony's staked tokens at a single
// point in time. TotalPower is what siege resolution compares; PerToken is
// retained for battle reports.
type PowerVector struct {
	ColonyID   int64            `json:"colony_id"`
	TotalPower int64            `json:"total_power"`
	PerToken   map[int64]int64  `json:"per_token,omitempty"`
	ComputedAt time.Time        `json:"computed_at"`
}

// PowerProvider computes the current combat power for a colony's tokens.
// The siege engine consults it exactly once per siege, at the defend step.
type PowerProvider interface {
	CombatPower(ctx context.Context, colonyID int64, tokenIDs []int64) (*PowerVector, error)
}

// Custody exposes the NFT custody/staking subsystem: which tokens a colony
// has staked, and whether a wallet owns a given token.
type Custody interface {
	StakedTokens(ctx context.Context, colonyID int64) ([]int64, error)
	ValidateOwnership(ctx context.Context, wallet string, tokenIDs []int64) error
}

// Treasury executes value transfers and burns of the game currency. Used by
// the fee ledger and by siege stake forfeiture and reward distribution.
type Treasury interface {
	Transfer(ctx context.Context, currency string, amount int64, from, to string) error
	Burn(ctx context.Context, currency string, amount int64, from string) error
}

// Bridge bundles the three collaborator interfaces behind one dependency.
type Bridge interface {
	PowerProvider
	Custody
	Treasury
}

// Client is the HTTP implementation of Bridge.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a game-bridge client. The base URL comes from
// GAME_BRIDGE_URL; telemetry instrumentation follows ENABLE_TELEMETRY.
func NewClient() *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if config.GetBoolEnv("ENABLE_TELEMETRY", false) {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		baseURL:   config.GetEnv("GAME_BRIDGE_URL", "http://localhost:9040"),
		userAgent: "colonywars/" + config.GetEnv("SERVICE_NAME", "warden"),
	}
}

// CombatPower implements PowerProvider.
func (c *Client) CombatPower(ctx context.Context, colonyID int64, tokenIDs []int64) (*PowerVector, error) {
	payload := map[string]any{"colony_id": colonyID, "token_ids": tokenIDs}

	var vector PowerVector
	if err := c.post(ctx, "/power/compute", payload, &vector); err != nil {
		return nil, fmt.Errorf("failed to compute combat power for colony %d: %w", colonyID, err)
	}
	if vector.ComputedAt.IsZero() {
		vector.ComputedAt = time.Now().UTC()
	}
	return &vector, nil
}

// StakedTokens implements Custody.
func (c *Client) StakedTokens(ctx context.Context, colonyID int64) ([]int64, error) {
	var out struct {
		TokenIDs []int64 `json:"token_ids"`
	}
	if err := c.get(ctx, fmt.Sprintf("/custody/colonies/%d/staked", colonyID), &out); err != nil {
		return nil, fmt.Errorf("failed to list staked tokens for colony %d: %w", colonyID, err)
	}
	return out.TokenIDs, nil
}

// ValidateOwnership implements Custody.
func (c *Client) ValidateOwnership(ctx context.Context, wallet string, tokenIDs []int64) error {
	payload := map[string]any{"wallet": wallet, "token_ids": tokenIDs}

	var out struct {
		Valid bool `json:"valid"`
	}
	if err := c.post(ctx, "/custody/validate", payload, &out); err != nil {
		return fmt.Errorf("failed to validate token ownership for %s: %w", wallet, err)
	}
	if !out.Valid {
		return fmt.Errorf("wallet %s does not own all supplied tokens", wallet)
	}
	return nil
}

// Transfer implements Treasury.
func (c *Client) Transfer(ctx context.Context, currency string, amount int64, from, to string) error {
	payload := map[string]any{"currency": currency, "amount": amount, "from": from, "to": to}
	if err := c.post(ctx, "/treasury/transfer", payload, nil); err != nil {
		return fmt.Errorf("failed to transfer %d %s: %w", amount, currency, err)
	}
	return nil
}

// Burn implements Treasury.
func (c *Client) Burn(ctx context.Context, currency string, amount int64, from string) error {
	payload := map[string]any{"currency": currency, "amount": amount, "from": from}
	if err := c.post(ctx, "/treasury/burn", payload, nil); err != nil {
		return fmt.Errorf("failed to burn %d %s: %w", amount, currency, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, dest)
}

func (c *Client) post(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest any) error {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("game bridge returned status %d: %s", resp.StatusCode, string(data))
	}
	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
