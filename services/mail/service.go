package mail

import (
	"bytes"
	"fmt"
	htmlTemplate "html/template"
	"path/filepath"
	"time"

	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/services/logging"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Service struct {
	config    *config.MailConfig
	client    *mail.Client
	templates *htmlTemplate.Template
	logger    *logging.Service
}

func NewService(cfg *config.MailConfig, logger *logging.Service) (*Service, error) {
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("MAIL_FROM_ADDRESS is required")
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
	}

	switch cfg.Encryption {
	case "tls", "starttls":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	case "ssl":
		clientOpts = append(clientOpts, mail.WithSSL())
	case "none":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	if cfg.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username))
	}
	if cfg.Password != "" {
		clientOpts = append(clientOpts, mail.WithPassword(cfg.Password))
	}

	client, err := mail.NewClient(cfg.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	service := &Service{
		config: cfg,
		client: client,
		logger: logger,
	}

	if err := service.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load mail templates: %w", err)
	}

	logger.Info("mail service initialized",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("from_address", cfg.FromAddress))

	return service, nil
}

// loadTemplates parses the built-in lifecycle templates and then, when a
// templates directory is configured, overlays any *.html files found
// there. On-disk templates shadow built-ins with the same name.
func (s *Service) loadTemplates() error {
	tmpl, err := htmlTemplate.New("mail").Parse("")
	if err != nil {
		return err
	}

	for name, body := range defaultTemplates {
		if _, err := tmpl.New(name).Parse(body); err != nil {
			return fmt.Errorf("failed to parse built-in template %s: %w", name, err)
		}
	}

	if s.config.TemplatesDir != "" {
		pattern := filepath.Join(s.config.TemplatesDir, "*.html")
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			if tmpl, err = tmpl.ParseFiles(matches...); err != nil {
				return fmt.Errorf("failed to parse templates from %s: %w", s.config.TemplatesDir, err)
			}
		}
	}

	s.templates = tmpl
	return nil
}

func (s *Service) NewMessage() *mail.Msg {
	message := mail.NewMsg()

	fromAddr := s.config.FromAddress
	if s.config.FromName != "" {
		fromAddr = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	}

	if err := message.From(fromAddr); err != nil {
		panic(fmt.Sprintf("failed to set FROM address: %s", err))
	}

	return message
}

func (s *Service) Send(message *mail.Msg) error {
	startTime := time.Now()
	err := s.client.DialAndSend(message)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("failed to send email",
			zap.Error(err),
			zap.Duration("attempt_duration", duration))
		return err
	}

	s.logger.Info("email sent", zap.Duration("send_duration", duration))
	return nil
}

func (s *Service) RenderTemplate(templateName string, data map[string]any) (string, error) {
	if s.templates.Lookup(templateName) == nil {
		return "", fmt.Errorf("mail template %q not found", templateName)
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", fmt.Errorf("failed to render mail template %q: %w", templateName, err)
	}
	return buf.String(), nil
}

func (s *Service) SendTemplate(templateName string, to []string, subject string, data map[string]any) error {
	body, err := s.RenderTemplate(templateName, data)
	if err != nil {
		return err
	}

	message := s.NewMessage()
	if err := message.To(to...); err != nil {
		return fmt.Errorf("failed to set recipients: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextHTML, body)

	s.logger.Info("sending template email",
		zap.String("template", templateName),
		zap.Strings("to", to))

	return s.Send(message)
}
