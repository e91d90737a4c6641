package issue

import (
	"context"
	"fmt"

	"civicgrid/internal/shared/constants"
)

// Sequencer mints yearly-sequential ticket numbers. Next must be called
// inside the same atomic unit of work as the issue insert: implementations
// serialize concurrent increments for the same year so numbers are unique
// under concurrent creation.
type Sequencer interface {
	Next(ctx context.Context, year int) (string, error)
}

// FormatTicketNumber renders a sequence value as PREFIX-YYYY-NNNNNN.
func FormatTicketNumber(year int, sequence uint64) string {
	return fmt.Sprintf("%s-%d-%0*d", constants.TicketPrefix, year, constants.TicketSequenceDigits, sequence)
}
