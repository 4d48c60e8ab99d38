package notification

import (
	"fmt"
	"strings"

	"opdcare/config"
	"opdcare/models"
	"opdcare/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// TwilioSender delivers SMS and WhatsApp messages through the Twilio REST
// API. When credentials are not configured it runs in mock mode: messages
// are logged and reported as sent, so development environments work without
// an account.
type TwilioSender struct {
	client       *twilio.RestClient
	smsFrom      string
	whatsappFrom string
	mock         bool
}

// NewTwilioSender builds a sender from the application config.
func NewTwilioSender() *TwilioSender {
	cfg := config.AppConfig
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		utils.GetLogger().Warn("Twilio credentials not configured; notifications run in mock mode")
		return &TwilioSender{mock: true}
	}
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		smsFrom:      cfg.TwilioPhoneNumber,
		whatsappFrom: cfg.TwilioWhatsAppFrom,
	}
}

func (s *TwilioSender) Send(payload models.MessagePayload) error {
	to, err := FormatMobileNumber(payload.To)
	if err != nil {
		return err
	}

	from := s.smsFrom
	if payload.Channel == models.ChannelWhatsApp {
		from = s.whatsappFrom
		if !strings.HasPrefix(from, "whatsapp:") {
			from = "whatsapp:" + from
		}
		to = "whatsapp:" + to
	}

	if s.mock {
		utils.GetLogger().Info("mock notification delivery",
			zap.String("channel", payload.Channel),
			zap.String("to", to),
			zap.String("body", payload.Body))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(payload.Body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send %s to %s: %w", payload.Channel, to, err)
	}
	if resp.Sid != nil {
		utils.GetLogger().Debug("notification delivered",
			zap.String("channel", payload.Channel),
			zap.String("sid", *resp.Sid))
	}
	return nil
}

// FormatMobileNumber normalizes a caller-entered number to E.164. Spaces and
// dashes are stripped; a bare 10-digit number gets the configured default
// country code; a leading 0 on an 11-digit number is dropped first. Numbers
// already carrying a + pass through unchanged.
func FormatMobileNumber(raw string) (string, error) {
	n := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	if n == "" {
		return "", fmt.Errorf("mobile number is empty")
	}
	if strings.HasPrefix(n, "+") {
		if len(n) < 11 {
			return "", fmt.Errorf("mobile number %q is too short", raw)
		}
		return n, nil
	}
	if len(n) == 11 && strings.HasPrefix(n, "0") {
		n = n[1:]
	}
	if len(n) != 10 {
		return "", fmt.Errorf("mobile number %q must be 10 digits", raw)
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("mobile number %q contains non-digit characters", raw)
		}
	}
	cc := strings.TrimPrefix(config.AppConfig.DefaultCountryCode, "+")
	if cc == "" {
		cc = "91"
	}
	return "+" + cc + n, nil
}
