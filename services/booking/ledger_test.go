package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymflow/database/repository/mocks"
	"gymflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

type recordingListener struct {
	memberIDs []string
}

func (r *recordingListener) BookingsChanged(_ context.Context, memberID string) {
	r.memberIDs = append(r.memberIDs, memberID)
}

type ledgerFixture struct {
	members  *mocks.MemberRepository
	classes  *mocks.ClassRepository
	sessions *mocks.SessionRepository
	bookings *mocks.BookingRepository
	uow      *mocks.UnitOfWork
	listener *recordingListener
	ledger   *Ledger

	member  *models.GymMember
	session *models.ClassSession
	class   *models.Class
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		members:  mocks.NewMemberRepository(t),
		classes:  mocks.NewClassRepository(t),
		sessions: mocks.NewSessionRepository(t),
		bookings: mocks.NewBookingRepository(t),
		uow:      &mocks.UnitOfWork{},
		listener: &recordingListener{},
		member:   &models.GymMember{ID: "m1", Name: "Ana", PlanType: models.PlanMonthly},
		session: &models.ClassSession{
			ID:       "s1",
			ClassID:  "c1",
			Schedule: time.Date(2024, time.January, 22, 10, 0, 0, 0, time.UTC),
		},
		class: &models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10},
	}

	ledger, err := NewLedger(f.uow, f.members, f.classes, f.sessions, f.bookings, defaultLimiter(t), zap.NewNop())
	require.NoError(t, err)
	ledger.now = func() time.Time { return fixedNow }
	ledger.SetChangeListener(f.listener)
	f.ledger = ledger
	return f
}

// expectResolved sets up the lookups and locks that precede the rule checks.
func (f *ledgerFixture) expectResolved() {
	f.members.On("GetByID", mock.Anything, "m1").Return(f.member, nil)
	f.sessions.On("GetByID", mock.Anything, "s1").Return(f.session, nil)
	f.classes.On("GetByID", mock.Anything, "c1").Return(f.class, nil)
	f.sessions.On("Lock", mock.Anything, "s1").Return(nil)
	f.classes.On("Lock", mock.Anything, "c1").Return(nil)
	f.members.On("Lock", mock.Anything, "m1").Return(nil)
}

func (f *ledgerFixture) expectMonthlyCount(n int) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	f.bookings.On("CountScheduledForMember", mock.Anything, "m1", from, to).Return(n, nil)
}

func TestLedger_BookClass_Success(t *testing.T) {
	f := newLedgerFixture(t)
	f.expectResolved()
	f.bookings.On("Exists", mock.Anything, "m1", "s1").Return(false, nil)
	f.bookings.On("CountBySession", mock.Anything, "s1").Return(3, nil)
	f.expectMonthlyCount(0)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.ID != "" && b.GymMemberID == "m1" && b.ClassID == "c1" &&
			b.ClassSessionID == "s1" && b.CreatedAt.Equal(fixedNow)
	})).Return(nil)

	res, err := f.ledger.BookClass(context.Background(), "m1", "s1")
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Class successfully booked!", res.Message)
	require.NotNil(t, res.Booking)
	assert.Equal(t, time.UTC, res.Booking.CreatedAt.Location())
	assert.Equal(t, []string{"m1"}, f.listener.memberIDs)
	assert.Equal(t, 1, f.uow.Runs)
	f.bookings.AssertExpectations(t)
}

func TestLedger_BookClass_MemberNotFound(t *testing.T) {
	f := newLedgerFixture(t)
	f.members.On("GetByID", mock.Anything, "ghost").Return(nil, models.ErrMemberNotFound)

	res, err := f.ledger.BookClass(context.Background(), "ghost", "s1")
	require.NoError(t, err)

	assert.Equal(t, OutcomeGymMemberNotFound, res.Outcome)
	assert.Equal(t, "Gym member not found.", res.Message)
	assert.True(t, models.IsNotFound(res.Outcome.Err()))
	f.sessions.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	assert.Empty(t, f.listener.memberIDs)
}

func TestLedger_BookClass_SessionNotFound(t *testing.T) {
	f := newLedgerFixture(t)
	f.members.On("GetByID", mock.Anything, "m1").Return(f.member, nil)
	f.sessions.On("GetByID", mock.Anything, "missing").Return(nil, models.ErrSessionNotFound)

	res, err := f.ledger.BookClass(context.Background(), "m1", "missing")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSessionNotFound, res.Outcome)
	assert.Equal(t, "Class session not found.", res.Message)
}

func TestLedger_BookClass_ClassNotFound(t *testing.T) {
	f := newLedgerFixture(t)
	f.members.On("GetByID", mock.Anything, "m1").Return(f.member, nil)
	f.sessions.On("GetByID", mock.Anything, "s1").Return(f.session, nil)
	f.classes.On("GetByID", mock.Anything, "c1").Return(nil, models.ErrClassNotFound)

	res, err := f.ledger.BookClass(context.Background(), "m1", "s1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeClassNotFound, res.Outcome)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLedger_BookClass_TwiceIsDuplicate(t *testing.T) {
	f := newLedgerFixture(t)
	f.expectResolved()
	f.bookings.On("Exists", mock.Anything, "m1", "s1").Return(false, nil).Once()
	f.bookings.On("Exists", mock.Anything, "m1", "s1").Return(true, nil).Once()
	f.bookings.On("CountBySession", mock.Anything, "s1").Return(0, nil).Once()
	f.expectMonthlyCount(0)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	first, err := f.ledger.BookClass(context.Background(), "m1", "s1")
	require.NoError(t, err)
	second, err := f.ledger.BookClass(context.Background(), "m1", "s1")
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, first.Outcome)
	assert.Equal(t, OutcomeDuplicateBooking, second.Outcome)
	assert.True(t, models.IsConflict(second.Outcome.Err()))
	f.bookings.AssertNumberOfCalls(t, "Create", 1)
}

func TestLedger_BookClass_DuplicateFromUniqueIndex(t *testing.T) {
	f := newLedgerFixture(t)
	f.expectResolved()
	f.bookings.On("Exists", mock.Anything, "m1", "s1").Return(false, nil)
	f.bookings.On("CountBySession", mock.Anything, "s1").Return(0, nil)
	f.expectMonthlyCount(0)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(models.ErrDuplicateBooking)

	res, err := f.ledger.BookClass(context.Background(), "m1", "s1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicateBooking, res.Outcome)
	assert.Empty(t, f.listener.memberIDs)
}

func TestLedger_BookClass_SessionFull(t *testing.T) {
	f := newLedgerFixture(t)
	f.expectResolved()
	f.bookings.On("Exists", mock.Anything, "m1", "s1").Return(false, nil)
	f.bookings.On("CountBySession", mock.Anything, "s1").Return(10, nil)

	res, err := f.ledger.BookClass(context.Background(), "m1", "s1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSessionFull, res.Outcome)
	assert.Equal(t, "This class session is already full.", res.Message)
	f.bookings.AssertNotCalled(t, "CountScheduledForMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedger_BookClass_MonthlyLimit(t *testing.T) {
	tests := []struct {
		name      string
		existing  int
		want      Outcome
		wantWrite bool
	}{
		{"12th booking succeeds", 11, OutcomeSuccess, true},
		{"13th booking refused", 12, OutcomeMonthlyLimitReached, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			f.expectResolved()
			f.bookings.On("Exists", mock.Anything, "m1", "s1").Return(false, nil)
			f.bookings.On("CountBySession", mock.Anything, "s1").Return(0, nil)
			f.expectMonthlyCount(tt.existing)
			if tt.wantWrite {
				f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
			}

			res, err := f.ledger.BookClass(context.Background(), "m1", "s1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
			if !tt.wantWrite {
				assert.Equal(t, "Booking limit reached for your Monthly plan.", res.Message)
				f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestLedger_BookClass_StorageError(t *testing.T) {
	f := newLedgerFixture(t)
	f.members.On("GetByID", mock.Anything, "m1").Return(nil, errors.New("connection refused"))

	res, err := f.ledger.BookClass(context.Background(), "m1", "s1")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.False(t, models.IsNotFound(err))
}

func TestLedger_CancelBooking_Success(t *testing.T) {
	f := newLedgerFixture(t)
	f.bookings.On("GetByID", mock.Anything, "b1").Return(&models.Booking{ID: "b1", GymMemberID: "m1"}, nil)
	f.bookings.On("Delete", mock.Anything, "b1").Return(nil)

	res, err := f.ledger.CancelBooking(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Booking canceled successfully.", res.Message)
	assert.Equal(t, []string{"m1"}, f.listener.memberIDs)
}

func TestLedger_CancelBooking_NotFound(t *testing.T) {
	f := newLedgerFixture(t)
	f.bookings.On("GetByID", mock.Anything, "b404").Return(nil, models.ErrBookingNotFound)

	res, err := f.ledger.CancelBooking(context.Background(), "b404")
	require.NoError(t, err)
	assert.Equal(t, OutcomeBookingNotFound, res.Outcome)
	assert.Equal(t, "Booking not found.", res.Message)
	f.bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLedger_ListByMember_UnknownMember(t *testing.T) {
	f := newLedgerFixture(t)
	f.members.On("GetByID", mock.Anything, "ghost").Return(nil, models.ErrMemberNotFound)

	_, err := f.ledger.ListByMember(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrMemberNotFound)
}

func TestLedger_ListByClass_ProjectsRelations(t *testing.T) {
	f := newLedgerFixture(t)
	f.classes.On("GetByID", mock.Anything, "c1").Return(f.class, nil)
	f.bookings.On("ListDetailsByClass", mock.Anything, "c1").Return([]models.BookingDetail{
		{Booking: models.Booking{ID: "b1", GymMemberID: "m1", ClassID: "c1", ClassSessionID: "s1"}, Member: f.member, Session: f.session, Class: f.class},
		{Booking: models.Booking{ID: "b2", GymMemberID: "m2", ClassID: "c1", ClassSessionID: "gone"}, Class: f.class},
	}, nil)

	dtos, err := f.ledger.ListByClass(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	assert.Equal(t, "Ana", dtos[0].GymMemberName)
	assert.Equal(t, "Yoga", dtos[0].ClassType)
	require.NotNil(t, dtos[0].SessionSchedule)
	assert.Equal(t, f.session.Schedule, *dtos[0].SessionSchedule)

	assert.Empty(t, dtos[1].GymMemberName)
	assert.Nil(t, dtos[1].SessionSchedule)
}
