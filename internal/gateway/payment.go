package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type CreateIntentRequest struct {
	Reference   string `json:"reference"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type Intent struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentGateway talks to the external payment provider. Amounts are in
// the smallest currency unit.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error)
	ConfirmIntent(ctx context.Context, intentID string) (*Intent, error)
	Refund(ctx context.Context, intentID string, amount int64) (*Intent, error)
}

type httpGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

func NewHTTPGateway(baseURL, apiKey string, log *zap.Logger) PaymentGateway {
	return &httpGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log.With(zap.String("gateway", "payment")),
	}
}

func (g *httpGateway) CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error) {
	if req.Currency == "" {
		req.Currency = "INR"
	}

	intent, err := g.post(ctx, "/v1/intents", req)
	if err != nil {
		g.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.String("reference", req.Reference),
			zap.Int64("amount", req.Amount),
		)
		return nil, fmt.Errorf("create payment intent for %s: %w", req.Reference, err)
	}

	g.log.Info("Payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("reference", req.Reference),
		zap.Int64("amount", req.Amount),
	)

	return intent, nil
}

func (g *httpGateway) ConfirmIntent(ctx context.Context, intentID string) (*Intent, error) {
	intent, err := g.post(ctx, "/v1/intents/"+intentID+"/confirm", nil)
	if err != nil {
		g.log.Error("Failed to confirm payment intent",
			zap.Error(err),
			zap.String("intent_id", intentID),
		)
		return nil, fmt.Errorf("confirm payment intent %s: %w", intentID, err)
	}

	return intent, nil
}

func (g *httpGateway) Refund(ctx context.Context, intentID string, amount int64) (*Intent, error) {
	body := map[string]any{"amount": amount}

	intent, err := g.post(ctx, "/v1/intents/"+intentID+"/refund", body)
	if err != nil {
		g.log.Error("Failed to refund payment intent",
			zap.Error(err),
			zap.String("intent_id", intentID),
			zap.Int64("amount", amount),
		)
		return nil, fmt.Errorf("refund payment intent %s: %w", intentID, err)
	}

	g.log.Info("Payment refunded",
		zap.String("intent_id", intentID),
		zap.Int64("amount", amount),
	)

	return intent, nil
}

func (g *httpGateway) post(ctx context.Context, path string, payload any) (*Intent, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(g.apiKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned %s", resp.Status)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if intent.ID == "" {
		return nil, errors.New("gateway returned empty intent id")
	}

	return &intent, nil
}
