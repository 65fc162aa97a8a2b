package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"wordpecker/internal/models"
)

// DigestService sends a daily learning progress summary via Amazon SES
type DigestService struct {
	client     *sesv2.Client
	fromEmail  string
	recipients []string
	levels     LevelStore
	enabled    bool
}

// NewDigestService creates a new digest service. When the sender address or
// recipient list is not configured the service is created disabled and
// SendProgressDigest becomes a no-op.
func NewDigestService(awsRegion, fromEmail string, recipients []string, levels LevelStore) (*DigestService, error) {
	if fromEmail == "" || len(recipients) == 0 {
		log.Info().Msg("digest service disabled: EMAIL_FROM or DIGEST_RECIPIENTS not configured")
		return &DigestService{levels: levels, enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("digest service enabled")
	return &DigestService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		recipients: recipients,
		levels:     levels,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the digest service is enabled
func (s *DigestService) IsEnabled() bool {
	return s.enabled
}

// SendProgressDigest builds the progress summary and mails it to every
// configured recipient.
func (s *DigestService) SendProgressDigest(ctx context.Context) error {
	if !s.enabled {
		return nil
	}

	levels, err := s.levels.ListLevels()
	if err != nil {
		return fmt.Errorf("failed to load levels for digest: %w", err)
	}

	subject, htmlBody, textBody := buildDigest(levels)
	for _, recipient := range s.recipients {
		if err := s.sendEmail(ctx, recipient, subject, htmlBody, textBody); err != nil {
			return err
		}
	}
	return nil
}

// buildDigest renders the digest subject and bodies from the level catalogue.
func buildDigest(levels []models.LevelProgress) (subject, htmlBody, textBody string) {
	completed := 0
	for _, lvl := range levels {
		if lvl.IsCompleted {
			completed++
		}
	}
	subject = fmt.Sprintf("Vocabulary progress: %d of %d levels completed", completed, len(levels))

	var htmlBuf, text strings.Builder
	htmlBuf.WriteString("<h2>Your vocabulary progress</h2><ul>")
	text.WriteString("Your vocabulary progress\n\n")
	for _, lvl := range levels {
		status := "locked"
		switch {
		case lvl.IsCompleted:
			status = "completed"
		case lvl.IsUnlocked:
			status = fmt.Sprintf("%d%%", lvl.Progress)
		}
		htmlBuf.WriteString(fmt.Sprintf("<li><strong>%s</strong>: %s</li>", html.EscapeString(lvl.Title), status))
		text.WriteString(fmt.Sprintf("- %s: %s\n", lvl.Title, status))
	}
	htmlBuf.WriteString("</ul>")
	return subject, htmlBuf.String(), text.String()
}

// sendEmail sends one message through SES
func (s *DigestService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.fromEmail),
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
		return fmt.Errorf("failed to send digest to %s: %w", toEmail, err)
	}
	log.Info().Str("to", toEmail).Str("subject", subject).Msg("digest sent")
	return nil
}
