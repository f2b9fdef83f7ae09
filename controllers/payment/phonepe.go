package paymentControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/alka-bakery/bakery-api/config"
	"go.uber.org/zap"
)

// PhonePeGateway talks to the PhonePe standard checkout API using OAuth
// client credentials. Access tokens are cached until shortly before
// expiry.
type PhonePeGateway struct {
	cfg    config.PhonePe
	client *http.Client
	log    *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewPhonePeGateway(cfg config.PhonePe, log *zap.Logger) *PhonePeGateway {
	return &PhonePeGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

// Enabled reports whether credentials were configured. A disabled
// gateway leaves COD as the only payment method.
func (g *PhonePeGateway) Enabled() bool {
	return g.cfg.ClientID != "" && g.cfg.ClientSecret != "" && g.cfg.BaseURL != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

func (g *PhonePeGateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry) {
		return g.accessToken, nil
	}

	form := fmt.Sprintf("client_id=%s&client_secret=%s&client_version=%s&grant_type=client_credentials",
		g.cfg.ClientID, g.cfg.ClientSecret, g.cfg.ClientVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.AuthURL, bytes.NewBufferString(form))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("phonepe auth request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("phonepe auth error (%d): %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to parse phonepe auth response: %w", err)
	}

	g.accessToken = tok.AccessToken
	// renew a minute early
	g.tokenExpiry = time.Unix(tok.ExpiresAt, 0).Add(-time.Minute)
	return g.accessToken, nil
}

type createPaymentResponse struct {
	OrderID     string `json:"orderId"`
	State       string `json:"state"`
	RedirectURL string `json:"redirectUrl"`
}

func (g *PhonePeGateway) CreatePayment(ctx context.Context, orderID string, amount float64) (string, string, error) {
	token, err := g.token(ctx)
	if err != nil {
		return "", "", err
	}

	payload := map[string]interface{}{
		"merchantOrderId": orderID,
		"amount":          int64(amount * 100), // paise
		"paymentFlow": map[string]interface{}{
			"type": "PG_CHECKOUT",
			"merchantUrls": map[string]string{
				"redirectUrl": g.cfg.RedirectBase + "/payment/result/" + orderID,
			},
		},
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.cfg.BaseURL+"/checkout/v2/pay", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach phonepe: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("phonepe API error (%d): %s", resp.StatusCode, string(body))
	}

	var created createPaymentResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", "", fmt.Errorf("failed to parse phonepe response: %w", err)
	}
	if created.RedirectURL == "" {
		return "", "", fmt.Errorf("phonepe returned empty redirect URL")
	}

	g.log.Info("phonepe payment created",
		zap.String("order_id", orderID),
		zap.String("ref", created.OrderID))
	return created.RedirectURL, created.OrderID, nil
}

type statusResponse struct {
	State string `json:"state"`
}

func (g *PhonePeGateway) Status(ctx context.Context, ref string) (bool, error) {
	token, err := g.token(ctx)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.cfg.BaseURL+"/checkout/v2/order/"+ref+"/status", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "O-Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach phonepe: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("phonepe API error (%d): %s", resp.StatusCode, string(body))
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return false, fmt.Errorf("failed to parse phonepe status: %w", err)
	}
	return status.State == "COMPLETED", nil
}
