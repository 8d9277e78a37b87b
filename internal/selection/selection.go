// Package selection maps a row number the user picked from a rendered view
// back to the id of the expense shown on that row.
package selection

import (
	"fmt"

	"expenses/internal/core"
)

// ResolveOrdinal returns the id at the 1-based ordinal of view. view must
// be the exact slice that was shown to the user.
func ResolveOrdinal(view []core.Expense, ordinal int) (core.ID, error) {
	if ordinal < 1 || ordinal > len(view) {
		return "", fmt.Errorf("row %d of %d: %w", ordinal, len(view), core.ErrOutOfRange)
	}
	return view[ordinal-1].ID, nil
}
