package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cherriedy/brewaco/internal/config"
	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/jaevor/go-nanoid"
)

const (
	momoRequestType = "captureWallet"
	momoLang        = "vi"
	momoCreatePath  = "/v2/gateway/api/create"
	momoRefundPath  = "/v2/gateway/api/refund"
)

// MomoGateway talks to the Momo wallet API: HMAC-SHA256 signed create and
// refund requests over HTTP, callback verification over the IPN body.
// Unlike VNPay the signing payload uses raw values, no query escaping.
type MomoGateway struct {
	partnerCode string
	accessKey   string
	secretKey   string
	redirectURL string
	ipnURL      string
	endpoint    string

	client    *http.Client
	requestID func() string
}

func NewMomoGateway(cfg config.MomoConfig, timeout time.Duration) (*MomoGateway, error) {
	required := map[string]string{
		"MOMO_PARTNER_CODE": cfg.PartnerCode,
		"MOMO_ACCESS_KEY":   cfg.AccessKey,
		"MOMO_SECRET_KEY":   cfg.SecretKey,
		"MOMO_REDIRECT_URL": cfg.RedirectURL,
		"MOMO_IPN_URL":      cfg.IpnURL,
		"MOMO_ENDPOINT":     cfg.Endpoint,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("momo: %w: %s", domain.ErrMissingConfig, name)
		}
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	gen, err := nanoid.Standard(16)
	if err != nil {
		return nil, fmt.Errorf("momo: init request id generator: %w", err)
	}

	return &MomoGateway{
		partnerCode: cfg.PartnerCode,
		accessKey:   cfg.AccessKey,
		secretKey:   cfg.SecretKey,
		redirectURL: cfg.RedirectURL,
		ipnURL:      cfg.IpnURL,
		endpoint:    cfg.Endpoint,
		client:      &http.Client{Timeout: timeout},
		requestID:   gen,
	}, nil
}

type momoCreateResponse struct {
	PayURL     string `json:"payUrl"`
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	TransID    int64  `json:"transId"`
}

func (g *MomoGateway) CreatePayment(ctx context.Context, orderID string, amount float64, meta domain.CreatePaymentMeta) (*domain.CreatePaymentResult, error) {
	requestID := orderID + "_" + g.requestID()
	orderInfo := meta.OrderInfo
	if orderInfo == "" {
		orderInfo = fmt.Sprintf("Thanh toan don hang #%s", orderID)
	}
	extraData := meta.ExtraData

	amountStr := strconv.FormatInt(int64(amount), 10)
	rawSignature := "accessKey=" + g.accessKey +
		"&amount=" + amountStr +
		"&extraData=" + extraData +
		"&ipnUrl=" + g.ipnURL +
		"&orderId=" + orderID +
		"&orderInfo=" + orderInfo +
		"&partnerCode=" + g.partnerCode +
		"&redirectUrl=" + g.redirectURL +
		"&requestId=" + requestID +
		"&requestType=" + momoRequestType

	body := map[string]any{
		"partnerCode": g.partnerCode,
		"accessKey":   g.accessKey,
		"requestId":   requestID,
		"amount":      amountStr,
		"orderId":     orderID,
		"orderInfo":   orderInfo,
		"redirectUrl": g.redirectURL,
		"ipnUrl":      g.ipnURL,
		"requestType": momoRequestType,
		"extraData":   extraData,
		"signature":   hmacHex(sha256.New, g.secretKey, rawSignature),
		"lang":        momoLang,
	}

	var resp momoCreateResponse
	if err := g.post(ctx, momoCreatePath, body, &resp); err != nil {
		return nil, err
	}
	if resp.PayURL == "" {
		return nil, fmt.Errorf("momo: create rejected (code %d): %s", resp.ResultCode, resp.Message)
	}

	return &domain.CreatePaymentResult{
		RedirectURL: resp.PayURL,
		OrderRef:    orderID,
	}, nil
}

func (g *MomoGateway) VerifyPayment(params map[string]string) (*domain.PaymentResult, error) {
	received := params["signature"]
	if received == "" {
		return nil, domain.ErrInvalidSignature
	}

	rawSignature := "accessKey=" + g.accessKey +
		"&amount=" + params["amount"] +
		"&extraData=" + params["extraData"] +
		"&message=" + params["message"] +
		"&orderId=" + params["orderId"] +
		"&orderInfo=" + params["orderInfo"] +
		"&orderType=" + params["orderType"] +
		"&partnerCode=" + params["partnerCode"] +
		"&payType=" + params["payType"] +
		"&requestId=" + params["requestId"] +
		"&responseTime=" + params["responseTime"] +
		"&resultCode=" + params["resultCode"] +
		"&transId=" + params["transId"]

	expected := hmacHex(sha256.New, g.secretKey, rawSignature)
	if !hmac.Equal([]byte(expected), []byte(received)) {
		return nil, domain.ErrInvalidSignature
	}

	amount, _ := strconv.ParseFloat(params["amount"], 64)
	resultCode := params["resultCode"]

	status := domain.PaymentStatusFailed
	if resultCode == "0" {
		status = domain.PaymentStatusPaid
	}

	return &domain.PaymentResult{
		Status:        status,
		Amount:        amount,
		TransactionID: params["transId"],
		OrderRef:      params["orderId"],
		ResponseCode:  resultCode,
		RawResponse:   params,
	}, nil
}

type momoRefundResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
}

func (g *MomoGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (bool, error) {
	requestID := transactionID + "_" + g.requestID()
	refundOrderID := transactionID + "_" + g.requestID()
	description := "Refund"

	amountStr := strconv.FormatInt(int64(amount), 10)
	rawSignature := "accessKey=" + g.accessKey +
		"&amount=" + amountStr +
		"&description=" + description +
		"&orderId=" + refundOrderID +
		"&partnerCode=" + g.partnerCode +
		"&requestId=" + requestID +
		"&transId=" + transactionID

	body := map[string]any{
		"partnerCode": g.partnerCode,
		"accessKey":   g.accessKey,
		"requestId":   requestID,
		"amount":      amountStr,
		"orderId":     refundOrderID,
		"transId":     transactionID,
		"lang":        momoLang,
		"description": description,
		"signature":   hmacHex(sha256.New, g.secretKey, rawSignature),
	}

	var resp momoRefundResponse
	if err := g.post(ctx, momoRefundPath, body, &resp); err != nil {
		return false, err
	}
	return resp.ResultCode == 0, nil
}

func (g *MomoGateway) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("momo: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("momo: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: momo responded %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("momo: decode response: %w", err)
	}
	return nil
}
