package payment

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

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Gateway interface {
	// Confirm approves a payment the customer authorized in the hosted
	// window. It is safe to repeat for the same order.
	Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*Payment, error)
}

const (
	codeAlreadyProcessed = "ALREADY_PROCESSED_PAYMENT"
	codeNotFoundPayment  = "NOT_FOUND_PAYMENT"
)

type tossGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewTossGateway(secretKey, baseURL string) Gateway {
	if secretKey == "" {
		logger.L().Warn("Toss secret key is empty")
	}

	return &tossGateway{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *tossGateway) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
	)

	body, err := json.Marshal(map[string]any{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments/confirm", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	// the gateway dedupes confirms carrying the same key
	req.Header.Set("Idempotency-Key", orderID)

	log.Info("Sending payment confirm to Toss")

	p, err := g.do(req)
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Code == codeAlreadyProcessed {
		log.Info("payment already confirmed, loading it")
		p, err := g.GetByOrderID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if p.Status != GatewayDone {
			log.Warn("processed payment is not approved", zap.String("status", string(p.Status)))
			return nil, fmt.Errorf("%w: %s", ErrNotApproved, p.Status)
		}
		return p, nil
	}
	if err != nil {
		log.Error("Toss confirm failed", zap.Error(err))
		return nil, err
	}

	log.Info("Toss payment confirmed",
		zap.String("status", string(p.Status)),
		zap.String("method", p.Method),
	)
	return p, nil
}

func (g *tossGateway) GetByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/v1/payments/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}

	p, err := g.do(req)
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && (gwErr.StatusCode == http.StatusNotFound || gwErr.Code == codeNotFoundPayment) {
		return nil, ErrPaymentNotFound
	}
	return p, err
}

func (g *tossGateway) do(req *http.Request) (*Payment, error) {
	req.SetBasicAuth(g.secretKey, "")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read toss response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		gwErr := &GatewayError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(bodyBytes, gwErr); jsonErr != nil || gwErr.Code == "" {
			gwErr.Code = "UNKNOWN"
			gwErr.Message = string(bodyBytes)
		}
		return nil, gwErr
	}

	var p Payment
	if err := json.Unmarshal(bodyBytes, &p); err != nil {
		return nil, fmt.Errorf("failed decoding toss response: %w", err)
	}
	return &p, nil
}
