package booking

import "gymflow/models"

// Outcome is the expected result of a booking operation. Anything that is
// not an Outcome is reported as an error.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeGymMemberNotFound
	OutcomeSessionNotFound
	OutcomeClassNotFound
	OutcomeDuplicateBooking
	OutcomeSessionFull
	OutcomeMonthlyLimitReached
	OutcomeBookingNotFound
)

var outcomeCodes = map[Outcome]string{
	OutcomeSuccess:             "Success",
	OutcomeGymMemberNotFound:   "GymMemberNotFound",
	OutcomeSessionNotFound:     "SessionNotFound",
	OutcomeClassNotFound:       "ClassNotFound",
	OutcomeDuplicateBooking:    "DuplicateBooking",
	OutcomeSessionFull:         "SessionFull",
	OutcomeMonthlyLimitReached: "MonthlyLimitReached",
	OutcomeBookingNotFound:     "NotFound",
}

var outcomeMessages = map[Outcome]string{
	OutcomeGymMemberNotFound: "Gym member not found.",
	OutcomeSessionNotFound:   "Class session not found.",
	OutcomeClassNotFound:     "Class not found.",
	OutcomeDuplicateBooking:  "You have already booked this class session.",
	OutcomeSessionFull:       "This class session is already full.",
	OutcomeBookingNotFound:   "Booking not found.",
}

var outcomeErrors = map[Outcome]error{
	OutcomeGymMemberNotFound:   models.ErrMemberNotFound,
	OutcomeSessionNotFound:     models.ErrSessionNotFound,
	OutcomeClassNotFound:       models.ErrClassNotFound,
	OutcomeDuplicateBooking:    models.ErrDuplicateBooking,
	OutcomeSessionFull:         models.ErrSessionFull,
	OutcomeMonthlyLimitReached: models.ErrMonthlyLimitReached,
	OutcomeBookingNotFound:     models.ErrBookingNotFound,
}

func (o Outcome) String() string {
	if code, ok := outcomeCodes[o]; ok {
		return code
	}
	return "Unknown"
}

// Err maps the outcome onto the error taxonomy. Success maps to nil.
func (o Outcome) Err() error {
	return outcomeErrors[o]
}

// Result is what BookClass and CancelBooking return for expected outcomes.
type Result struct {
	Outcome Outcome         `json:"outcome"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Booking *models.Booking `json:"booking,omitempty"`
}

func newResult(o Outcome) *Result {
	return &Result{Outcome: o, Code: o.String(), Message: outcomeMessages[o]}
}

func limitResult(plan models.PlanType) *Result {
	r := newResult(OutcomeMonthlyLimitReached)
	r.Message = "Booking limit reached for your " + plan.String() + " plan."
	return r
}

func bookedResult(b *models.Booking) *Result {
	r := newResult(OutcomeSuccess)
	r.Message = "Class successfully booked!"
	r.Booking = b
	return r
}

func canceledResult() *Result {
	r := newResult(OutcomeSuccess)
	r.Message = "Booking canceled successfully."
	return r
}
