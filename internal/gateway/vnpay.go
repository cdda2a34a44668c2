package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
	"strconv"
	"time"

	"github.com/cherriedy/brewaco/internal/config"
	"github.com/cherriedy/brewaco/internal/domain"
)

const (
	vnpCommandPay  = "pay"
	vnpCurrency    = "VND"
	vnpLocale      = "vn"
	vnpOrderType   = "other"
	vnpSuccessCode = "00"
)

// VNPayGateway builds signed redirect URLs and verifies return/IPN
// parameters for VNPay. The provider encodes amounts in subunits
// (amount x100) and signs with HMAC-SHA512 over the sorted query string.
type VNPayGateway struct {
	tmnCode    string
	hashSecret string
	payURL     string
	returnURL  string
	version    string

	now func() time.Time
}

func NewVNPayGateway(cfg config.VNPayConfig) (*VNPayGateway, error) {
	required := map[string]string{
		"VNPAY_TMN_CODE":    cfg.TmnCode,
		"VNPAY_HASH_SECRET": cfg.HashSecret,
		"VNPAY_URL":         cfg.PayURL,
		"VNPAY_RETURN_URL":  cfg.ReturnURL,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("vnpay: %w: %s", domain.ErrMissingConfig, name)
		}
	}

	version := cfg.Version
	if version == "" {
		version = "2.1.0"
	}

	return &VNPayGateway{
		tmnCode:    cfg.TmnCode,
		hashSecret: cfg.HashSecret,
		payURL:     cfg.PayURL,
		returnURL:  cfg.ReturnURL,
		version:    version,
		now:        time.Now,
	}, nil
}

func (g *VNPayGateway) CreatePayment(ctx context.Context, orderID string, amount float64, meta domain.CreatePaymentMeta) (*domain.CreatePaymentResult, error) {
	orderInfo := meta.OrderInfo
	if orderInfo == "" {
		orderInfo = fmt.Sprintf("Thanh toan don hang #%s", orderID)
	}
	ipAddr := meta.ClientIP
	if ipAddr == "" {
		ipAddr = "127.0.0.1"
	}

	params := map[string]string{
		"vnp_Version":    g.version,
		"vnp_Command":    vnpCommandPay,
		"vnp_TmnCode":    g.tmnCode,
		"vnp_Locale":     vnpLocale,
		"vnp_CurrCode":   vnpCurrency,
		"vnp_TxnRef":     orderID,
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  vnpOrderType,
		"vnp_Amount":     strconv.FormatInt(int64(amount*100), 10),
		"vnp_ReturnUrl":  g.returnURL,
		"vnp_IpAddr":     ipAddr,
		"vnp_CreateDate": g.now().Format("20060102150405"),
	}
	if meta.BankCode != "" {
		params["vnp_BankCode"] = meta.BankCode
	}

	signData := canonicalize(params)
	secureHash := hmacHex(sha512.New, g.hashSecret, signData)

	return &domain.CreatePaymentResult{
		RedirectURL: g.payURL + "?" + signData + "&vnp_SecureHash=" + secureHash,
		OrderRef:    orderID,
	}, nil
}

func (g *VNPayGateway) VerifyPayment(params map[string]string) (*domain.PaymentResult, error) {
	received := params["vnp_SecureHash"]
	if received == "" {
		return nil, domain.ErrInvalidSignature
	}

	signed := make(map[string]string, len(params))
	for k, v := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		signed[k] = v
	}

	expected := hmacHex(sha512.New, g.hashSecret, canonicalize(signed))
	if !hmac.Equal([]byte(expected), []byte(received)) {
		return nil, domain.ErrInvalidSignature
	}

	// Amount comes back in subunits; divide before storage.
	rawAmount, _ := strconv.ParseInt(params["vnp_Amount"], 10, 64)
	responseCode := params["vnp_ResponseCode"]

	status := domain.PaymentStatusFailed
	if responseCode == vnpSuccessCode {
		status = domain.PaymentStatusPaid
	}

	return &domain.PaymentResult{
		Status:        status,
		Amount:        float64(rawAmount) / 100,
		TransactionID: params["vnp_TransactionNo"],
		OrderRef:      params["vnp_TxnRef"],
		ResponseCode:  responseCode,
		BankCode:      params["vnp_BankCode"],
		RawResponse:   params,
	}, nil
}
