package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingField          = errors.New("missing required field")
	ErrEmailInUse            = errors.New("email already in use")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrEmailNotVerified      = errors.New("email address is not verified")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrPasswordHashingFailed = errors.New("failed to hash password")
	ErrNotifierUnavailable   = errors.New("notification dispatch failed")
)

// ValidationError reports a password that fails the configured strength
// policy. Its message is safe to show to the caller.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Notifier delivers lifecycle emails. Failures are returned, never
// swallowed; the caller decides how they affect the operation outcome.
type Notifier interface {
	SendVerification(email, verifyURL string) error
	SendReset(email, resetURL string) error
}

// AssertionIssuer signs the time-limited assertion returned by Login.
type AssertionIssuer interface {
	GenerateToken(userID, firstName string) (string, error)
}

// Service owns the credential lifecycle: registration, email
// verification, authentication and password reset. It holds no state of
// its own; the Store is the single source of truth and every transition
// re-reads the record before deciding.
type Service struct {
	config   *config.Config
	store    Store
	notifier Notifier
	issuer   AssertionIssuer
	logger   *logging.Service
}

func NewService(cfg *config.Config, store Store, notifier Notifier, issuer AssertionIssuer, logger *logging.Service) *Service {
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		config:   cfg,
		store:    store,
		notifier: notifier,
		issuer:   issuer,
		logger:   logger,
	}
}

type RegistrationResult struct {
	UserID string
	// VerificationSent reports whether the verification email went out.
	// The record is committed before the notifier is called, so a false
	// value means partial success: the account exists and verification
	// can be re-requested, not that registration failed.
	VerificationSent bool
}

type LoginMeta struct {
	IP        string
	UserAgent string
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *PublicUser `json:"user"`
}

// NormalizeEmail fixes the address case policy: addresses are compared
// and stored lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) ValidatePassword(password string) error {
	if len(password) < s.config.Auth.MinLength {
		return &ValidationError{msg: fmt.Sprintf("password must be at least %d characters", s.config.Auth.MinLength)}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	var missing []string
	if s.config.Auth.RequireUpper && !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if s.config.Auth.RequireLower && !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if s.config.Auth.RequireNumber && !hasNumber {
		missing = append(missing, "one number")
	}
	if s.config.Auth.RequireSpecial && !hasSpecial {
		missing = append(missing, "one special character")
	}

	if len(missing) > 0 {
		return &ValidationError{msg: fmt.Sprintf("password must contain at least %s", strings.Join(missing, ", "))}
	}
	return nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return "", ErrPasswordHashingFailed
	}
	return string(hash), nil
}

func (s *Service) generateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// Register creates an unverified credential record and requests a
// verification email. The record commits before the notifier call; a
// notifier failure is reported through RegistrationResult, not as an
// error, so registration is never rolled back over a mail outage.
func (s *Service) Register(email, password, firstName, lastName string) (*RegistrationResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingField
	}
	if err := s.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(s.config.Auth.VerificationTokenLength)
	if err != nil {
		return nil, err
	}
	expiry := time.Now().Add(s.config.Auth.VerificationExpiry)

	user := &User{
		ID:                 uuid.New().String(),
		FirstName:          firstName,
		LastName:           lastName,
		Email:              email,
		PasswordHash:       hash,
		Verified:           false,
		VerificationToken:  &token,
		VerificationExpiry: &expiry,
	}

	// Uniqueness is enforced by the store's insert, not a pre-check, so
	// two racing registrations cannot both commit.
	if err := s.store.Insert(user); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			s.logger.Warn("registration rejected: email in use", zap.String("email", email))
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", email))

	result := &RegistrationResult{UserID: user.ID}

	verifyURL := fmt.Sprintf("%s/verify/%s", s.config.App.URL, token)
	if err := s.notifier.SendVerification(email, verifyURL); err != nil {
		s.logger.Error("failed to send verification email",
			zap.Error(err),
			zap.String("email", email))
		return result, nil
	}

	result.VerificationSent = true
	return result, nil
}

// VerifyEmail consumes a verification token. The transition is terminal:
// a second call with the same token finds no match and fails.
func (s *Service) VerifyEmail(token string) error {
	if token == "" {
		return ErrInvalidOrExpiredToken
	}

	user, err := s.store.FindByVerificationToken(token, time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		s.logger.Warn("invalid or expired verification token attempted")
		return ErrInvalidOrExpiredToken
	}

	err = s.store.Update(user.ID, map[string]any{
		"verified":            true,
		"verification_token":  nil,
		"verification_expiry": nil,
	})
	if err != nil {
		return err
	}

	s.logger.Info("email verified", zap.String("user_id", user.ID))
	return nil
}

// Login authenticates a credential record and issues a signed assertion.
// Verified status only gates login when RequireEmailVerification is set;
// the default matches the reference behaviour of not gating.
func (s *Service) Login(email, password string, meta *LoginMeta) (*LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingField
	}

	user, err := s.store.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn("login failed: unknown email", zap.String("email", email))
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed: password mismatch", zap.String("user_id", user.ID))
		return nil, ErrInvalidPassword
	}

	if s.config.Auth.RequireEmailVerification && !user.Verified {
		s.logger.Warn("login blocked: email not verified", zap.String("user_id", user.ID))
		return nil, ErrEmailNotVerified
	}

	token, err := s.issuer.GenerateToken(user.ID, user.FirstName)
	if err != nil {
		return nil, err
	}

	if meta != nil {
		s.recordLogin(user.ID, meta)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResult{Token: token, User: user.Public()}, nil
}

// ForgotPassword issues a reset token and emails a reset link. When no
// account matches it does nothing and still reports success, so the
// response cannot be used to probe which addresses are registered.
func (s *Service) ForgotPassword(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrMissingField
	}

	user, err := s.store.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		// Anti-enumeration: same outcome as the success path.
		return nil
	}

	token, err := s.generateToken(s.config.Auth.ResetTokenLength)
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.config.Auth.ResetExpiry)

	// Overwrites any prior reset token, invalidating it.
	err = s.store.Update(user.ID, map[string]any{
		"reset_token":  token,
		"reset_expiry": expiry,
	})
	if err != nil {
		return err
	}

	s.logger.Info("reset token issued", zap.String("user_id", user.ID))

	resetURL := fmt.Sprintf("%s/reset.html?token=%s", s.config.App.FrontendURL, token)
	if err := s.notifier.SendReset(email, resetURL); err != nil {
		s.logger.Error("failed to send reset email",
			zap.Error(err),
			zap.String("user_id", user.ID))
		return ErrNotifierUnavailable
	}

	return nil
}

// ValidateResetToken reports whether a reset token currently matches an
// unexpired issuance. Pure read, no mutation.
func (s *Service) ValidateResetToken(token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	user, err := s.store.FindByResetToken(token, time.Now())
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// ResetPassword consumes a reset token and sets a new password hash.
// Both reset fields clear in the same update, so each issuance is
// single-use.
func (s *Service) ResetPassword(token, newPassword string) error {
	if newPassword == "" {
		return ErrMissingField
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.store.FindByResetToken(token, time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		s.logger.Warn("invalid or expired reset token attempted")
		return ErrInvalidOrExpiredToken
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.store.Update(user.ID, map[string]any{
		"password_hash": hash,
		"reset_token":   nil,
		"reset_expiry":  nil,
	})
	if err != nil {
		return err
	}

	s.logger.Info("password reset completed", zap.String("user_id", user.ID))
	return nil
}

func (s *Service) recordLogin(userID string, meta *LoginMeta) {
	activity := ParseLoginActivity(userID, meta.IP, meta.UserAgent)
	if err := s.store.RecordLogin(activity); err != nil {
		// Activity is advisory; a failed write must not fail the login.
		s.logger.Error("failed to record login activity",
			zap.Error(err),
			zap.String("user_id", userID))
	}
}
