package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	pkglogger "github.com/nisantasi/storefront/pkg/logger"
)

// AWSSESMailer sends verification code emails using AWS SES. One instance is
// constructed at startup and shared; the SES client is safe for concurrent use.
type AWSSESMailer struct {
	sesClient   *ses.Client
	fromAddress string
	brandName   string
	logger      *slog.Logger
}

// NewAWSSESMailer creates a new AWS SES mailer.
func NewAWSSESMailer(region, fromAddress, brandName string, logger *slog.Logger) (*AWSSESMailer, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESMailer{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		brandName:   brandName,
		logger:      logger,
	}, nil
}

// SendVerificationCode sends the 6-digit code to the user.
func (s *AWSSESMailer) SendVerificationCode(ctx context.Context, email, code, displayName string) error {
	if displayName == "" {
		displayName = "there"
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1f2937; color: white; padding: 30px; text-align: center; border-radius: 4px; }
        .content { padding: 20px 0; }
        .code-box { background: #f9fafb; border: 2px dashed #1f2937; padding: 20px; text-align: center; margin: 20px 0; border-radius: 4px; }
        .code { font-size: 32px; font-weight: bold; color: #1f2937; letter-spacing: 5px; }
        .footer { color: #666; font-size: 12px; margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>%s</h1>
            <h2>Verify your email address</h2>
        </div>
        <div class="content">
            <p>Hi %s,</p>
            <p>Welcome! Use the 6-digit code below to verify your account:</p>
            <div class="code-box">
                <div class="code">%s</div>
            </div>
            <p><strong>This code expires in 15 minutes.</strong> Do not share it with anyone.</p>
            <p>If you did not create this account, you can ignore this email.</p>
        </div>
        <div class="footer">
            <p>This is an automated message. Please do not reply to this email.</p>
        </div>
    </div>
</body>
</html>
`, s.brandName, displayName, code)

	textBody := fmt.Sprintf(`Hi %s,

Welcome to %s! Use this code to verify your account: %s

This code expires in 15 minutes. Do not share it with anyone.
If you did not create this account, you can ignore this email.
`, displayName, s.brandName, code)

	input := &ses.SendEmailInput{
		Source: aws.String(fmt.Sprintf("%s <%s>", s.brandName, s.fromAddress)),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(fmt.Sprintf("%s - Email verification code", s.brandName)),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send verification email via SES",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("verification email sent",
		slog.String("email", pkglogger.SanitizedEmail(email)),
		slog.String("message_id", *result.MessageId))

	return nil
}
