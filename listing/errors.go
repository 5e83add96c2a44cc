package listing

import "github.com/camarero/camarero/faults"

// NoticeNoData is the informational empty-result state. It renders next
// to an empty table, never as a blocking error screen.
const NoticeNoData = "No data available to show."

const (
	MessageNotFound     = "The requested route or resource was not found (404)."
	MessageServerFault  = "Internal server error. Try again later."
	MessageNetwork      = "Connection error. Check your network."
	MessageUnexpected   = "An unexpected error occurred."
	MessageDeleteFailed = "Could not delete. Try again later."
)

// FetchErrorMessage maps a classified fetch failure to the single
// user-facing message for that view.
func FetchErrorMessage(err error) string {
	category, ok := faults.CategoryOf(err)
	if !ok {
		return MessageUnexpected
	}

	switch category {
	case faults.NotFoundError:
		return MessageNotFound
	case faults.ServerError:
		return MessageServerFault
	case faults.TransportError:
		return MessageNetwork
	default:
		return MessageUnexpected
	}
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func notFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.NotFoundError, message, cause)
}

func preconditionError(message string, cause error) error {
	return faults.NewTypedError(faults.PreconditionError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
