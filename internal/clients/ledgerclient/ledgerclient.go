package ledgerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/lockuplabs/token-lockup-service/internal/config"
	"github.com/rs/zerolog/log"
)

type LedgerClient struct {
	httpClient *http.Client
	cfg        *config.LedgerConfig
}

func NewLedgerClient(cfg *config.LedgerConfig) *LedgerClient {
	return &LedgerClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

type balanceResponse struct {
	Amount string `json:"amount"`
}

type sequenceResponse struct {
	Sequence uint64 `json:"sequence"`
}

type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

func (c *LedgerClient) Balance(ctx context.Context, holder, asset string) (math.Int, error) {
	path := fmt.Sprintf("/v1/accounts/%s/balances/%s", url.PathEscape(holder), url.PathEscape(asset))

	callForBalance := func() (*balanceResponse, error) {
		var resp balanceResponse
		if err := c.get(ctx, path, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}

	resp, err := clientCallWithRetry(callForBalance, c.cfg)
	if err != nil {
		return math.Int{}, fmt.Errorf("failed to get balance of asset %s: %w", asset, err)
	}

	amount, ok := math.NewIntFromString(resp.Amount)
	if !ok {
		return math.Int{}, fmt.Errorf("ledger returned malformed balance %q for asset %s", resp.Amount, asset)
	}
	return amount, nil
}

// Transfer moves amount of asset between ledger accounts. It is not retried:
// the ledger treats each transfer as atomic and a timed-out call may still
// have settled.
func (c *LedgerClient) Transfer(ctx context.Context, from, to, asset string, amount math.Int) error {
	body, err := json.Marshal(transferRequest{
		From:   from,
		To:     to,
		Asset:  asset,
		Amount: amount.String(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/v1/transfers", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute transfer of asset %s: %w", asset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("transfer of asset %s rejected with status %d: %s", asset, resp.StatusCode, string(msg))
	}
	return nil
}

func (c *LedgerClient) CurrentSequence(ctx context.Context) (uint64, error) {
	callForSequence := func() (*sequenceResponse, error) {
		var resp sequenceResponse
		if err := c.get(ctx, "/v1/sequence", &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}

	resp, err := clientCallWithRetry(callForSequence, c.cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to get current ledger sequence: %w", err)
	}
	return resp.Sequence, nil
}

func (c *LedgerClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger responded with status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func clientCallWithRetry[T any](
	call retry.RetryableFuncWithData[*T], cfg *config.LedgerConfig,
) (*T, error) {
	result, err := retry.DoWithData(call, retry.Attempts(cfg.MaxRetryTimes), retry.Delay(cfg.RetryInterval), retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the ledger")
		}))

	if err != nil {
		return nil, err
	}
	return result, nil
}
