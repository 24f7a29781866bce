package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/bbois1999/gun-event/domain"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

const verifyTimeout = 10 * time.Second

// TwilioVerifier delegates phone-path OTP issuance and checking to the
// Twilio Verify API. The code itself never touches this process.
type TwilioVerifier struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilioVerifier(accountSID, authToken, serviceSID string) *TwilioVerifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	// Provider calls must fail rather than hang.
	client.SetTimeout(verifyTimeout)
	return &TwilioVerifier{client: client, serviceSID: serviceSID}
}

func (t *TwilioVerifier) StartVerification(_ context.Context, to string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(to)
	params.SetChannel("sms")

	resp, err := t.client.VerifyV2.CreateVerification(t.serviceSID, params)
	if err != nil {
		return &domain.ProviderError{Provider: "twilio", Err: err}
	}
	if resp.Status == nil || *resp.Status != "pending" {
		status := "unknown"
		if resp.Status != nil {
			status = *resp.Status
		}
		return &domain.ProviderError{Provider: "twilio", Err: fmt.Errorf("unexpected verification status %q", status)}
	}
	return nil
}

func (t *TwilioVerifier) CheckVerification(_ context.Context, to, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(to)
	params.SetCode(code)

	resp, err := t.client.VerifyV2.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		return false, &domain.ProviderError{Provider: "twilio", Err: err}
	}
	return resp.Status != nil && *resp.Status == "approved", nil
}
