package captcha

import (
	"github.com/mojocn/base64Captcha"
	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/zap"
)

// Service issues and checks CAPTCHA challenges. Challenges are stored
// server-side keyed by id, so no session state is involved; an answer is
// consumed on the first verification attempt.
type Service struct {
	config  *config.Config
	captcha *base64Captcha.Captcha
	logger  *logging.Service
}

func NewService(cfg *config.Config, logger *logging.Service) *Service {
	store := base64Captcha.NewMemoryStore(base64Captcha.GCLimitNumber, cfg.Captcha.Expiry)
	driver := base64Captcha.NewDriverDigit(
		cfg.Captcha.Height,
		cfg.Captcha.Width,
		cfg.Captcha.Length,
		0.7,
		80,
	)

	return &Service{
		config:  cfg,
		captcha: base64Captcha.NewCaptcha(driver, store),
		logger:  logger,
	}
}

func (s *Service) Enabled() bool {
	return s.config.Captcha.Enabled
}

// Generate returns a challenge id and a base64-encoded PNG data URI.
func (s *Service) Generate() (id, image string, err error) {
	id, image, _, err = s.captcha.Generate()
	if err != nil {
		s.logger.Error("failed to generate captcha", zap.Error(err))
		return "", "", err
	}
	return id, image, nil
}

// Verify consumes the challenge regardless of outcome: a wrong answer
// burns the id, forcing a fresh challenge.
func (s *Service) Verify(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return s.captcha.Verify(id, answer, true)
}
