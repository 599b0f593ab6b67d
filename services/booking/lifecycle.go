package booking

import "inkbook/models"

// legalTransitions is the booking state machine. Completed, cancelled and
// no_show are terminal: they have no outgoing edges.
var legalTransitions = map[string][]string{
	models.StatusPending: {
		models.StatusConfirmed,
		models.StatusCancelled,
		models.StatusNoShow,
	},
	models.StatusConfirmed: {
		models.StatusInProgress,
		models.StatusCancelled,
		models.StatusNoShow,
	},
	models.StatusInProgress: {
		models.StatusCompleted,
	},
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow:
		return true
	}
	return false
}

// CanTransition reports whether the state machine permits from -> to.
func CanTransition(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
