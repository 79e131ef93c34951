package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/internal/config"
	inviteUC "github.com/rafaelrch/koplai/usecase/invite"
)

const apiURL = "https://api.resend.com/emails"

// Client sends transactional email through the Resend API.
type Client struct {
	apiKey     string
	from       string
	siteURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg config.ResendConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		siteURL:    cfg.SiteURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendInvite delivers the invitation email with the accept link.
func (c *Client) SendInvite(ctx context.Context, invitation *domain.Invitation, company *domain.Company, inviter *domain.User) error {
	if c.apiKey == "" {
		return fmt.Errorf("resend: api key not configured")
	}
	if invitation == nil {
		return domain.ErrInvalidPayload
	}

	inviterName := "Um colega"
	if inviter != nil && inviter.Name != "" {
		inviterName = inviter.Name
	}
	companyName := "a equipe"
	if company != nil && company.Name != "" {
		companyName = company.Name
	}
	link := fmt.Sprintf("%s/accept-invite?token=%s", c.siteURL, invitation.Token)

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{invitation.Email},
		Subject: fmt.Sprintf("%s convidou você para o Koplai", inviterName),
		HTML:    inviteHTML(inviterName, companyName, invitation.Role, link),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Info("invite email sent",
		zap.String("invitation_id", invitation.ID),
		zap.String("email", invitation.Email))
	return nil
}

func inviteHTML(inviterName, companyName, role, link string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 520px; margin: 0 auto;">
  <h2>Você foi convidado!</h2>
  <p>%s convidou você para entrar em %s como <strong>%s</strong>.</p>
  <p style="margin: 24px 0;">
    <a href="%s" style="background: #3B82F6; color: #fff; padding: 12px 24px; border-radius: 8px; text-decoration: none;">Aceitar convite</a>
  </p>
  <p style="color: #6b7280; font-size: 13px;">Este convite expira em 7 dias. Se você não esperava este e-mail, pode ignorá-lo.</p>
</div>`, inviterName, companyName, role, link)
}

var _ inviteUC.Mailer = (*Client)(nil)
