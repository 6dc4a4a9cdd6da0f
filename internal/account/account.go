// Package account stores the account holder's profile shown on the dashboard.
package account

import (
	"strings"

	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/storage"
)

// DefaultHolder is the name used until the user sets one.
const DefaultHolder = "John Doe"

// Store holds a single AccountProfile.
type Store struct {
	file    *storage.File
	logger  logging.Logger
	profile models.AccountProfile
}

// NewStore creates a profile store backed by file.
func NewStore(file *storage.File, logger logging.Logger) *Store {
	return &Store{
		file:    file,
		logger:  logging.OrNop(logger).WithField(logging.FieldStore, "account"),
		profile: models.AccountProfile{Name: DefaultHolder},
	}
}

// Load reads the profile, keeping the default holder when no file exists.
func (s *Store) Load() error {
	var profile models.AccountProfile
	ok, err := s.file.Load(&profile)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("No account file found, using default profile")
		return nil
	}
	if strings.TrimSpace(profile.Name) == "" {
		profile.Name = DefaultHolder
	}
	s.profile = profile
	return nil
}

// Get returns a copy of the profile.
func (s *Store) Get() models.AccountProfile {
	p := s.profile
	p.Emails = append([]string(nil), p.Emails...)
	p.PhoneNumbers = append([]string(nil), p.PhoneNumbers...)
	return p
}

// Update replaces the profile. Blank emails and phone numbers are dropped.
func (s *Store) Update(name string, emails, phones []string, imagePath string) (models.AccountProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.AccountProfile{}, ledgererror.Invalid("name", "", "must not be empty")
	}
	next := models.AccountProfile{
		Name:         name,
		Emails:       compact(emails),
		PhoneNumbers: compact(phones),
		ImagePath:    strings.TrimSpace(imagePath),
	}
	if err := s.file.Save(next); err != nil {
		return models.AccountProfile{}, err
	}
	s.profile = next
	s.logger.Info("Updated account profile")
	return s.Get(), nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
