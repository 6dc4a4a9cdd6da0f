// Package ledger owns the ordered list of transactions: creation, edits,
// deletion, filtering and the income/expense summary.
package ledger

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/dateutils"
	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/storage"

	"github.com/google/uuid"
)

// MethodSet is the view of the payment-method registry the ledger needs.
type MethodSet interface {
	Contains(label string) bool
	First() (string, bool)
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to date new transactions.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how transaction ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Store is the transaction ledger. Records keep their insertion order.
type Store struct {
	file    *storage.File
	methods MethodSet
	logger  logging.Logger
	now     func() time.Time
	newID   func() string

	transactions []models.Transaction
}

// NewStore creates an empty ledger backed by file. Call Load to read the
// existing records.
func NewStore(file *storage.File, methods MethodSet, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		file:    file,
		methods: methods,
		logger:  logging.OrNop(logger),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the ledger file. A missing or blank file yields an empty
// ledger; malformed records are skipped with a warning. A file that is not a
// JSON array is a PersistenceError.
func (s *Store) Load() error {
	data, err := s.file.ReadBytes()
	if err != nil {
		return err
	}
	s.transactions = nil
	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Info("Ledger file missing or empty, starting with an empty ledger",
			logging.F(logging.FieldFile, s.file.Path()))
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ledgererror.PersistenceError{Op: "decode", Path: s.file.Path(), Err: err}
	}

	seen := make(map[string]bool, len(raw))
	loaded := make([]models.Transaction, 0, len(raw))
	for i, msg := range raw {
		var rec record
		if err := json.Unmarshal(msg, &rec); err != nil {
			s.skip(i, err)
			continue
		}
		tx, err := rec.transaction()
		if err != nil {
			s.skip(i, err)
			continue
		}
		if tx.ID == "" || seen[tx.ID] {
			tx.ID = s.newID()
		}
		seen[tx.ID] = true
		loaded = append(loaded, tx)
	}
	s.transactions = loaded

	s.logger.Info("Loaded ledger",
		logging.F(logging.FieldFile, s.file.Path()),
		logging.F(logging.FieldCount, len(loaded)))
	return nil
}

func (s *Store) skip(index int, err error) {
	s.logger.Warn("Skipping malformed ledger record",
		logging.F(logging.FieldIndex, index),
		logging.F(logging.FieldReason, err.Error()))
}

// Add validates the raw field values, dates the transaction now and appends it.
func (s *Store) Add(description, amount, category, recipient, paymentMethod, status string) (models.Transaction, error) {
	tx, err := s.build(description, amount, category, recipient, paymentMethod, status)
	if err != nil {
		return models.Transaction{}, err
	}
	tx.ID = s.newID()
	tx.Date = s.now().In(time.Local).Truncate(time.Second)

	next := append(s.Transactions(), tx)
	if err := s.commit(next); err != nil {
		return models.Transaction{}, err
	}
	s.logger.Info("Added transaction",
		logging.F(logging.FieldTransactionID, tx.ID),
		logging.F(logging.FieldCategory, string(tx.Category)),
		logging.F(logging.FieldAmount, tx.Amount.String()))
	return tx, nil
}

func (s *Store) build(description, amount, category, recipient, paymentMethod, status string) (models.Transaction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return models.Transaction{}, ledgererror.Invalid("description", "", "must not be empty")
	}
	value, err := models.ParseAmount(amount)
	if err != nil {
		return models.Transaction{}, err
	}
	cat, err := models.ParseCategory(category)
	if err != nil {
		return models.Transaction{}, err
	}
	st, err := models.ParseStatus(status)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := s.checkMethod(paymentMethod); err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		Description:   description,
		Amount:        value,
		Category:      cat,
		Recipient:     strings.TrimSpace(recipient),
		PaymentMethod: paymentMethod,
		Status:        st,
	}, nil
}

func (s *Store) checkMethod(label string) error {
	if s.methods == nil || !s.methods.Contains(label) {
		return ledgererror.Invalid("payment_method", label, "not in the payment method registry")
	}
	return nil
}

// Patch holds the fields to change in Edit. Nil fields are left as they are.
type Patch struct {
	Description   *string
	Amount        *string
	Category      *string
	Recipient     *string
	PaymentMethod *string
	Status        *string
	Date          *string
}

// Edit applies patch to the transaction with the given id. Every supplied
// field is validated before anything changes; the date is preserved unless
// the patch supplies one.
func (s *Store) Edit(id string, patch Patch) (models.Transaction, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Transaction{}, &ledgererror.NotFoundError{Kind: "transaction", Key: id}
	}

	updated, err := s.apply(s.transactions[idx], patch)
	if err != nil {
		return models.Transaction{}, err
	}

	next := s.Transactions()
	next[idx] = updated
	if err := s.commit(next); err != nil {
		return models.Transaction{}, err
	}
	s.logger.Info("Edited transaction", logging.F(logging.FieldTransactionID, id))
	return updated, nil
}

func (s *Store) apply(tx models.Transaction, patch Patch) (models.Transaction, error) {
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		if d == "" {
			return tx, ledgererror.Invalid("description", "", "must not be empty")
		}
		tx.Description = d
	}
	if patch.Amount != nil {
		amount, err := models.ParseAmount(*patch.Amount)
		if err != nil {
			return tx, err
		}
		tx.Amount = amount
	}
	if patch.Category != nil {
		cat, err := models.ParseCategory(*patch.Category)
		if err != nil {
			return tx, err
		}
		tx.Category = cat
	}
	if patch.Recipient != nil {
		tx.Recipient = strings.TrimSpace(*patch.Recipient)
	}
	if patch.PaymentMethod != nil {
		if err := s.checkMethod(*patch.PaymentMethod); err != nil {
			return tx, err
		}
		tx.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Status != nil {
		st, err := models.ParseStatus(*patch.Status)
		if err != nil {
			return tx, err
		}
		tx.Status = st
	}
	if patch.Date != nil {
		date, err := dateutils.ParseTimestamp(*patch.Date)
		if err != nil {
			return tx, ledgererror.Invalid("date", *patch.Date, "must be YYYY-MM-DD HH:MM:SS or YYYY-MM-DD")
		}
		tx.Date = date
	}
	return tx, nil
}

// Delete removes and returns the transaction with the given id.
func (s *Store) Delete(id string) (models.Transaction, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Transaction{}, &ledgererror.NotFoundError{Kind: "transaction", Key: id}
	}

	removed := s.transactions[idx]
	next := make([]models.Transaction, 0, len(s.transactions)-1)
	next = append(next, s.transactions[:idx]...)
	next = append(next, s.transactions[idx+1:]...)
	if err := s.commit(next); err != nil {
		return models.Transaction{}, err
	}
	s.logger.Info("Deleted transaction", logging.F(logging.FieldTransactionID, id))
	return removed, nil
}

// At returns the transaction at a ledger position.
func (s *Store) At(index int) (models.Transaction, error) {
	if index < 0 || index >= len(s.transactions) {
		return models.Transaction{}, &ledgererror.NotFoundError{Kind: "transaction index", Key: strconv.Itoa(index)}
	}
	return s.transactions[index], nil
}

// EditAt is Edit addressed by position.
func (s *Store) EditAt(index int, patch Patch) (models.Transaction, error) {
	tx, err := s.At(index)
	if err != nil {
		return models.Transaction{}, err
	}
	return s.Edit(tx.ID, patch)
}

// DeleteAt is Delete addressed by position.
func (s *Store) DeleteAt(index int) (models.Transaction, error) {
	tx, err := s.At(index)
	if err != nil {
		return models.Transaction{}, err
	}
	return s.Delete(tx.ID)
}

// Get returns the transaction with the given id.
func (s *Store) Get(id string) (models.Transaction, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Transaction{}, &ledgererror.NotFoundError{Kind: "transaction", Key: id}
	}
	return s.transactions[idx], nil
}

// Transactions returns a copy of the ledger in insertion order.
func (s *Store) Transactions() []models.Transaction {
	return append([]models.Transaction(nil), s.transactions...)
}

// Len returns the number of transactions.
func (s *Store) Len() int {
	return len(s.transactions)
}

// CountPaymentMethod returns how many transactions reference label.
func (s *Store) CountPaymentMethod(label string) int {
	n := 0
	for _, tx := range s.transactions {
		if tx.PaymentMethod == label {
			n++
		}
	}
	return n
}

// ReassignPaymentMethod copies newLabel into every transaction using
// oldLabel and persists once. It returns the number of records changed.
func (s *Store) ReassignPaymentMethod(oldLabel, newLabel string) (int, error) {
	next := s.Transactions()
	changed := 0
	for i := range next {
		if next[i].PaymentMethod == oldLabel {
			next[i].PaymentMethod = newLabel
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.commit(next); err != nil {
		return 0, err
	}
	s.logger.Info("Reassigned payment method",
		logging.F(logging.FieldPaymentMethod, oldLabel),
		logging.F("new_payment_method", newLabel),
		logging.F(logging.FieldCount, changed))
	return changed, nil
}

// ImportLegacy appends records from the legacy text ledger, keeping their
// dates. Unknown categories become Expense; records that still fail
// validation are skipped. Imported records use the first registered payment
// method and status Completed. It returns the number of records imported.
func (s *Store) ImportLegacy(records []storage.LegacyRecord) (int, error) {
	method, ok := "", false
	if s.methods != nil {
		method, ok = s.methods.First()
	}
	if !ok {
		return 0, ledgererror.Invalid("payment_method", "", "registry is empty")
	}

	next := s.Transactions()
	imported := 0
	for _, rec := range records {
		log := s.logger.WithField(logging.FieldLine, rec.Line)

		category, err := models.ParseCategory(rec.Category)
		if err != nil {
			log.Warn("Unknown legacy category, importing as Expense",
				logging.F(logging.FieldCategory, rec.Category))
			category = models.CategoryExpense
		}
		tx, err := s.build(rec.Description, rec.Amount, string(category), "", method, string(models.StatusCompleted))
		if err != nil {
			log.Warn("Skipping legacy record", logging.F(logging.FieldReason, err.Error()))
			continue
		}
		date, err := dateutils.ParseTimestamp(rec.Date)
		if err != nil {
			log.Warn("Skipping legacy record", logging.F(logging.FieldReason, err.Error()))
			continue
		}
		tx.ID = s.newID()
		tx.Date = date
		next = append(next, tx)
		imported++
	}

	if imported == 0 {
		return 0, nil
	}
	if err := s.commit(next); err != nil {
		return 0, err
	}
	s.logger.Info("Imported legacy records", logging.F(logging.FieldCount, imported))
	return imported, nil
}

func (s *Store) indexOf(id string) int {
	for i, tx := range s.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// commit writes next as a JSON array and only then makes it the current
// state; a failed write leaves the ledger as it was.
func (s *Store) commit(next []models.Transaction) error {
	data, err := storage.JSONCodec{}.Marshal(toRecords(next))
	if err != nil {
		return &ledgererror.PersistenceError{Op: "encode", Path: s.file.Path(), Err: err}
	}
	if err := s.file.WriteBytes(data); err != nil {
		return err
	}
	s.transactions = next
	return nil
}
