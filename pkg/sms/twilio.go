package sms

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/salescoach-dev/sales-coach/pkg/config"
)

// TwilioClient is a minimal client for the Twilio Messages API used to
// deliver two-factor codes. When credentials are absent the client runs in
// dev mode and logs the code instead of sending it.
type TwilioClient struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	client     *http.Client
}

// NewTwilioClient creates a Twilio client from config.
func NewTwilioClient(cfg *config.TwilioConfig) *TwilioClient {
	base := "https://api.twilio.com"
	var sid, token, from string
	if cfg != nil {
		sid = cfg.AccountSID
		token = cfg.AuthToken
		from = cfg.FromNumber
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
	}
	return &TwilioClient{
		accountSID: sid,
		authToken:  token,
		fromNumber: from,
		baseURL:    base,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether real SMS delivery is possible.
func (t *TwilioClient) Configured() bool {
	return t.accountSID != "" && t.authToken != "" && t.fromNumber != ""
}

// GenerateCode returns a random 6-digit verification code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// SendVerificationCode delivers a 2FA code to the given phone number.
func (t *TwilioClient) SendVerificationCode(ctx context.Context, phone, code string) error {
	if !t.Configured() {
		// Dev mode: no provider configured, surface the code in the log
		log.Printf("[2FA DEV MODE] code %s -> %s", code, phone)
		return nil
	}

	body := fmt.Sprintf("【AI営業マネージャー】認証コード: %s（5分間有効）", code)

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", t.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}
	return nil
}

// MaskPhone returns the trailing four digits prefixed with asterisks, for UI
// display after a code has been sent.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return "****" + phone[len(phone)-4:]
}
