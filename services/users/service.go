package users

import (
	"errors"

	"github.com/mynews-app/backend/services/auth"
	"github.com/mynews-app/backend/services/logging"
)

var ErrNotFound = errors.New("user not found")

// Service exposes profile reads over the credential store. It only ever
// returns public profile shapes; hashes and tokens stay behind the store
// boundary.
type Service struct {
	store  auth.Store
	logger *logging.Service
}

func NewService(store auth.Store, logger *logging.Service) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

func (s *Service) Profile(userID string) (*auth.PublicUser, error) {
	user, err := s.store.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user.Public(), nil
}

func (s *Service) ProfileByEmail(email string) (*auth.PublicUser, error) {
	user, err := s.store.FindByEmail(auth.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user.Public(), nil
}
