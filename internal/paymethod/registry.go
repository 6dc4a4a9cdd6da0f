// Package paymethod owns the set of payment-method labels transactions may
// reference, and the rules for removing a label that is still in use.
package paymethod

import (
	"fmt"
	"strings"

	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/storage"
)

// References is the view of the ledger the registry needs to keep labels
// consistent with the transactions that use them.
type References interface {
	CountPaymentMethod(label string) int
	ReassignPaymentMethod(oldLabel, newLabel string) (int, error)
}

// Registry is the ordered set of payment-method labels.
type Registry struct {
	file     *storage.File
	logger   logging.Logger
	defaults []string
	refs     References

	labels []string
}

// NewRegistry creates a registry backed by file. defaults seed it when the
// file does not exist yet.
func NewRegistry(file *storage.File, defaults []string, logger logging.Logger) *Registry {
	return &Registry{
		file:     file,
		logger:   logging.OrNop(logger).WithField(logging.FieldStore, "payment_methods"),
		defaults: append([]string(nil), defaults...),
	}
}

// SetReferences attaches the ledger. Until it is set every label counts as
// unused and Reassign has nothing to rewrite.
func (r *Registry) SetReferences(refs References) {
	r.refs = refs
}

// Load reads the registry file, falling back to the defaults when it is
// missing or blank. Blank and duplicate labels in the file are dropped.
func (r *Registry) Load() error {
	var stored []string
	ok, err := r.file.Load(&stored)
	if err != nil {
		return err
	}
	if !ok {
		stored = r.defaults
		r.logger.Info("No payment method file found, using defaults",
			logging.F(logging.FieldCount, len(stored)))
	}

	labels := make([]string, 0, len(stored))
	for _, label := range stored {
		label = strings.TrimSpace(label)
		if label == "" || contains(labels, label) {
			r.logger.Warn("Skipping invalid payment method", logging.F(logging.FieldPaymentMethod, label))
			continue
		}
		labels = append(labels, label)
	}
	r.labels = labels
	return nil
}

// Add registers label. It reports false without changing anything when the
// label is empty or already registered.
func (r *Registry) Add(label string) (bool, error) {
	label = strings.TrimSpace(label)
	if label == "" || r.Contains(label) {
		r.logger.Warn("Payment method not added (empty or already exists)",
			logging.F(logging.FieldPaymentMethod, label))
		return false, nil
	}

	next := append(r.List(), label)
	if err := r.commit(next); err != nil {
		return false, err
	}
	r.logger.Info("Added payment method", logging.F(logging.FieldPaymentMethod, label))
	return true, nil
}

// Remove unregisters label. It reports false when the label is absent. A
// label still referenced by transactions, or the last remaining label, is
// not removed; the returned ValidationError says why.
func (r *Registry) Remove(label string) (bool, error) {
	idx := indexOf(r.labels, label)
	if idx < 0 {
		r.logger.Warn("Payment method not removed (not found)", logging.F(logging.FieldPaymentMethod, label))
		return false, nil
	}
	if n := r.usage(label); n > 0 {
		return false, ledgererror.Invalid("payment_method", label,
			fmt.Sprintf("used by %d transaction(s); reassign them first", n))
	}
	if len(r.labels) == 1 {
		return false, ledgererror.Invalid("payment_method", label, "cannot remove the only payment method")
	}

	next := make([]string, 0, len(r.labels)-1)
	next = append(next, r.labels[:idx]...)
	next = append(next, r.labels[idx+1:]...)
	if err := r.commit(next); err != nil {
		return false, err
	}
	r.logger.Info("Removed payment method", logging.F(logging.FieldPaymentMethod, label))
	return true, nil
}

// Reassign moves every transaction using oldLabel to newLabel. Equal labels
// are a successful no-op; an unregistered label on either side reports false.
func (r *Registry) Reassign(oldLabel, newLabel string) (bool, error) {
	if !r.Contains(oldLabel) || !r.Contains(newLabel) {
		r.logger.Warn("Cannot reassign payment method (not found)",
			logging.F(logging.FieldPaymentMethod, oldLabel),
			logging.F("new_payment_method", newLabel))
		return false, nil
	}
	if oldLabel == newLabel {
		r.logger.Debug("Payment methods are the same, nothing to reassign",
			logging.F(logging.FieldPaymentMethod, oldLabel))
		return true, nil
	}
	if r.refs == nil {
		return true, nil
	}
	if _, err := r.refs.ReassignPaymentMethod(oldLabel, newLabel); err != nil {
		return false, err
	}
	return true, nil
}

// Usage returns how many transactions reference label.
func (r *Registry) Usage(label string) int {
	return r.usage(label)
}

func (r *Registry) usage(label string) int {
	if r.refs == nil {
		return 0
	}
	return r.refs.CountPaymentMethod(label)
}

// List returns the labels in registration order.
func (r *Registry) List() []string {
	return append([]string(nil), r.labels...)
}

// Contains reports whether label is registered.
func (r *Registry) Contains(label string) bool {
	return contains(r.labels, label)
}

// First returns the earliest registered label.
func (r *Registry) First() (string, bool) {
	if len(r.labels) == 0 {
		return "", false
	}
	return r.labels[0], true
}

func (r *Registry) commit(next []string) error {
	if err := r.file.Save(next); err != nil {
		return err
	}
	r.labels = next
	return nil
}

func contains(labels []string, label string) bool {
	return indexOf(labels, label) >= 0
}

func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}
