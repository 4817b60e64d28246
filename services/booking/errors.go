package booking

import "errors"

var (
	// ErrNotFound indicates the requested booking does not exist.
	ErrNotFound = errors.New("booking not found")
	// ErrMachineNotFound indicates the booked machine does not exist.
	ErrMachineNotFound = errors.New("machine not found")
	// ErrMachineUnavailable indicates the machine is not open for booking.
	ErrMachineUnavailable = errors.New("machine is not available for booking")
	// ErrDatesConflict indicates an overlapping confirmed or active booking.
	ErrDatesConflict = errors.New("machine is already booked for the requested dates")
	// ErrInvalidTransition indicates a status update the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid booking status transition")
	// ErrNotBookingOwner indicates a status update by an owner against a
	// booking on someone else's machine.
	ErrNotBookingOwner = errors.New("booking belongs to another owner")
	// ErrInvalidBasePrice indicates a base price that is not a positive number.
	ErrInvalidBasePrice = errors.New("base price must be a positive number")
)

// ValidationError reports a booking draft that fails schema validation. The
// message is safe to surface to the client.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

func validationErrorf(msg string) error { return ValidationError{Message: msg} }
