package ledger

import (
	"encoding/json"

	"fintrack/internal/dateutils"
	"fintrack/internal/ledgererror"
	"fintrack/internal/models"
)

// record is the on-disk shape of a transaction. Every field is kept raw so a
// single bad record can be rejected without failing the whole file.
type record struct {
	ID            string      `json:"id,omitempty"`
	Description   string      `json:"description"`
	Amount        json.Number `json:"amount"`
	Category      string      `json:"category"`
	Recipient     string      `json:"recipient"`
	Date          string      `json:"date"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
}

func toRecord(tx models.Transaction) record {
	return record{
		ID:            tx.ID,
		Description:   tx.Description,
		Amount:        json.Number(tx.Amount.String()),
		Category:      string(tx.Category),
		Recipient:     tx.Recipient,
		Date:          tx.DateString(),
		PaymentMethod: tx.PaymentMethod,
		Status:        string(tx.Status),
	}
}

func toRecords(txs []models.Transaction) []record {
	records := make([]record, len(txs))
	for i, tx := range txs {
		records[i] = toRecord(tx)
	}
	return records
}

// transaction validates r. A missing id is not an error; the caller assigns
// one. Records written before statuses existed load as Completed.
func (r record) transaction() (models.Transaction, error) {
	if r.Description == "" {
		return models.Transaction{}, ledgererror.Invalid("description", "", "must not be empty")
	}
	amount, err := models.ParseAmount(r.Amount.String())
	if err != nil {
		return models.Transaction{}, err
	}
	category, err := models.ParseCategory(r.Category)
	if err != nil {
		return models.Transaction{}, err
	}
	status := models.StatusCompleted
	if r.Status != "" {
		if status, err = models.ParseStatus(r.Status); err != nil {
			return models.Transaction{}, err
		}
	}
	date, err := dateutils.ParseTimestamp(r.Date)
	if err != nil {
		return models.Transaction{}, ledgererror.Invalid("date", r.Date, "must be YYYY-MM-DD HH:MM:SS")
	}
	return models.Transaction{
		ID:            r.ID,
		Description:   r.Description,
		Amount:        amount,
		Category:      category,
		Recipient:     r.Recipient,
		Date:          date,
		PaymentMethod: r.PaymentMethod,
		Status:        status,
	}, nil
}
