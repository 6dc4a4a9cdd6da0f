// Package wallet stores payment card metadata.
package wallet

import (
	"strings"

	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/storage"
)

// Store is the ordered list of cards. The last card is the most recently added.
type Store struct {
	file   *storage.File
	logger logging.Logger
	cards  []models.Card
}

// NewStore creates a wallet backed by file.
func NewStore(file *storage.File, logger logging.Logger) *Store {
	return &Store{
		file:   file,
		logger: logging.OrNop(logger).WithField(logging.FieldStore, "wallet"),
	}
}

// Load reads the wallet file. A missing file is an empty wallet.
func (s *Store) Load() error {
	var cards []models.Card
	if _, err := s.file.Load(&cards); err != nil {
		return err
	}
	s.cards = cards
	s.logger.Debug("Loaded cards", logging.F(logging.FieldCount, len(cards)))
	return nil
}

// AddCard appends a card. The same number may be added more than once.
func (s *Store) AddCard(number, cardType, imagePath string) (models.Card, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return models.Card{}, ledgererror.Invalid("number", "", "must not be empty")
	}
	card := models.Card{
		Number:    number,
		Type:      strings.TrimSpace(cardType),
		ImagePath: strings.TrimSpace(imagePath),
	}

	next := append(s.Cards(), card)
	if err := s.file.Save(next); err != nil {
		return models.Card{}, err
	}
	s.cards = next
	s.logger.Info("Added card", logging.F("card", card.Masked()), logging.F("type", card.Type))
	return card, nil
}

// Cards returns the cards in insertion order.
func (s *Store) Cards() []models.Card {
	return append([]models.Card(nil), s.cards...)
}

// Latest returns the most recently added card.
func (s *Store) Latest() (models.Card, bool) {
	if len(s.cards) == 0 {
		return models.Card{}, false
	}
	return s.cards[len(s.cards)-1], true
}
