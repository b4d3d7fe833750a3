package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"autoblog/internal/apperr"
	"autoblog/internal/core"
	"autoblog/internal/logger"
	"autoblog/internal/render"
)

var ErrNoRecipients = errors.New("no marketing team emails configured")

// Service sends generated posts to the marketing team.
type Service struct {
	mailer     Mailer
	from       string
	recipients []string
	theme      Theme
	log        *slog.Logger
	now        func() time.Time
}

func NewService(mailer Mailer, from string, recipients []string, log *slog.Logger) *Service {
	return &Service{
		mailer:     mailer,
		from:       from,
		recipients: recipients,
		theme:      DefaultTheme(),
		log:        logger.OrDefault(log),
		now:        time.Now,
	}
}

// Recipients returns the configured addresses.
func (s *Service) Recipients() []string {
	return s.recipients
}

// SendPost mails one post with its DOCX and HTML attached.
func (s *Service) SendPost(ctx context.Context, post *core.GeneratedPost) error {
	if len(s.recipients) == 0 {
		s.log.Warn("No marketing team emails configured")
		return apperr.NewDelivery("email", ErrNoRecipients)
	}
	if err := render.Ensure(post); err != nil {
		return fmt.Errorf("failed to render attachments: %w", err)
	}

	body, err := RenderPost(post, s.theme)
	if err != nil {
		return err
	}

	msg := Message{
		From:        s.from,
		To:          s.recipients,
		Subject:     PostSubject(post),
		HTML:        body,
		Attachments: Attachments(post),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("Failed to send blog email", "title", post.Title, "error", err)
		return err
	}
	s.log.Info("Blog email sent to marketing team", "title", post.Title, "recipients", len(s.recipients))
	return nil
}

// SendDigest mails every post in one message with all artifacts attached.
func (s *Service) SendDigest(ctx context.Context, posts []*core.GeneratedPost) error {
	if len(s.recipients) == 0 {
		s.log.Warn("No marketing team emails configured")
		return apperr.NewDelivery("email", ErrNoRecipients)
	}

	var attachments []Attachment
	for _, p := range posts {
		if err := render.Ensure(p); err != nil {
			return fmt.Errorf("failed to render attachments for %q: %w", p.Title, err)
		}
		attachments = append(attachments, Attachments(p)...)
	}

	body, err := RenderDigest(posts, s.theme, s.now())
	if err != nil {
		return err
	}

	msg := Message{
		From:        s.from,
		To:          s.recipients,
		Subject:     DigestSubject(len(posts)),
		HTML:        body,
		Attachments: attachments,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("Failed to send weekly digest", "posts", len(posts), "error", err)
		return err
	}
	s.log.Info("Weekly digest sent", "posts", len(posts), "recipients", len(s.recipients))
	return nil
}
