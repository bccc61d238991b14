package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"ecoquest/internal/models"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	// escalation inbox for verified reports; falls back to fromEmail
	escalationEmail string
	enabled         bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service whose send methods are silent no-ops.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL, escalationEmail string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: EMAIL_FROM not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if escalationEmail == "" {
		escalationEmail = fromEmail
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:          sesv2.NewFromConfig(cfg),
		fromEmail:       fromEmail,
		fromName:        fromName,
		appBaseURL:      appBaseURL,
		escalationEmail: escalationEmail,
		enabled:         true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to new players
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to EcoQuest!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="background-color: #2e7d32; color: white; padding: 20px; text-align: center;">
			<h1>Welcome to EcoQuest!</h1>
		</div>
		<div style="background-color: #f9f9f9; padding: 30px;">
			<p>Hi %s,</p>
			<p>Your EcoQuest account is ready. Play eco games, earn points, level up, and share your environmental actions with the community.</p>
			<p style="text-align: center;">
				<a href="%s/login" style="display: inline-block; padding: 12px 30px; background-color: #2e7d32; color: white; text-decoration: none;">Start Playing</a>
			</p>
		</div>
		<p style="text-align: center; font-size: 12px; color: #666;">This is an automated email from EcoQuest. Please do not reply.</p>
	</div>
</body>
</html>
`, toName, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Your EcoQuest account is ready. Play eco games, earn points, level up, and share your environmental actions with the community.

Start playing: %s/login

---
This is an automated email from EcoQuest. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.appBaseURL, resetToken)
	subject := "Reset Your EcoQuest Password"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="background-color: #2e7d32; color: white; padding: 20px; text-align: center;">
			<h1>Password Reset Request</h1>
		</div>
		<div style="background-color: #f9f9f9; padding: 30px;">
			<p>Hi %s,</p>
			<p>We received a request to reset your EcoQuest password. Click the button below to choose a new one:</p>
			<p style="text-align: center;">
				<a href="%s" style="display: inline-block; padding: 12px 30px; background-color: #2e7d32; color: white; text-decoration: none;">Reset Password</a>
			</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
			<p><strong>This link will expire in 1 hour.</strong></p>
			<p>If you didn't request a reset, you can safely ignore this email.</p>
		</div>
		<p style="text-align: center; font-size: 12px; color: #666;">This is an automated email from EcoQuest. Please do not reply.</p>
	</div>
</body>
</html>
`, toName, resetLink, resetLink)

	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset your EcoQuest password.

Reset it here: %s

This link will expire in 1 hour. If you didn't request a reset, you can safely ignore this email.

---
This is an automated email from EcoQuest. Please do not reply.
`, toName, resetLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendReportEscalationEmail notifies the escalation inbox that a community
// report has been verified and moved to In Progress
func (s *EmailService) SendReportEscalationEmail(ctx context.Context, report *models.Report, reporterName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): escalation for report %d", report.ID)
		return nil
	}

	subject := fmt.Sprintf("[EcoQuest] %s report verified: %s", report.Severity, report.Title)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>Verified community report</h2>
		<table cellpadding="4">
			<tr><td><strong>Title</strong></td><td>%s</td></tr>
			<tr><td><strong>Category</strong></td><td>%s</td></tr>
			<tr><td><strong>Severity</strong></td><td>%s</td></tr>
			<tr><td><strong>Location</strong></td><td>%s</td></tr>
			<tr><td><strong>Reported by</strong></td><td>%s</td></tr>
		</table>
		<p>%s</p>
	</div>
</body>
</html>
`, report.Title, report.Category, report.Severity, report.Location, reporterName, report.Description)

	textBody := fmt.Sprintf(`Verified community report

Title:       %s
Category:    %s
Severity:    %s
Location:    %s
Reported by: %s

%s
`, report.Title, report.Category, report.Severity, report.Location, reporterName, report.Description)

	return s.sendEmail(ctx, s.escalationEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
