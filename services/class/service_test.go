package class

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gymflow/database/repository/mocks"
	"gymflow/models"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)

type serviceFixture struct {
	classes  *mocks.ClassRepository
	sessions *mocks.SessionRepository
	bookings *mocks.BookingRepository
	svc      *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		classes:  mocks.NewClassRepository(t),
		sessions: mocks.NewSessionRepository(t),
		bookings: mocks.NewBookingRepository(t),
	}
	svc, err := NewService(&mocks.UnitOfWork{}, f.classes, f.sessions, f.bookings, zap.NewNop())
	require.NoError(t, err)
	svc.now = func() time.Time { return fixedNow }
	f.svc = svc
	return f
}

func jan(day int) civil.Date { return civil.Date{Year: 2024, Month: time.January, Day: day} }

func recurrence() models.Recurrence {
	return models.Recurrence{
		StartDate:  jan(22),
		EndDate:    jan(31),
		StartTime:  civil.Time{Hour: 10},
		EndTime:    civil.Time{Hour: 11},
		DaysOfWeek: []int{1, 3, 5},
	}
}

func session(id, classID string, day int) models.ClassSession {
	start, end := civil.Time{Hour: 10}, civil.Time{Hour: 11}
	return models.ClassSession{
		ID:        id,
		ClassID:   classID,
		Date:      jan(day),
		StartTime: start,
		EndTime:   end,
		Schedule:  models.ScheduleOf(jan(day), start),
	}
}

// assignIDs mimics the repository assigning identities on insert.
func assignIDs(_ context.Context, in []models.ClassSession) []models.ClassSession {
	out := make([]models.ClassSession, len(in))
	for i, s := range in {
		s.ID = fmt.Sprintf("s%d", i+1)
		out[i] = s
	}
	return out
}

func TestService_CreateClass(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Class) bool {
		return c.ID != "" && c.ClassType == "Yoga" && c.MaxCapacity == 12
	})).Return(nil)

	f.sessions.On("CreateMany", mock.Anything, mock.MatchedBy(func(ss []models.ClassSession) bool {
		for _, s := range ss {
			if s.ClassID == "" {
				return false
			}
		}
		return len(ss) == 5
	})).Return(assignIDs, nil)

	dto, err := f.svc.CreateClass(context.Background(), models.CreateClassRequest{
		ClassType:   " Yoga ",
		MaxCapacity: 12,
		Recurrence:  recurrence(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Yoga", dto.ClassType)
	require.Len(t, dto.Sessions, 5)
	for _, s := range dto.Sessions {
		assert.Equal(t, 60, s.DurationInMinutes)
		assert.Equal(t, 0, s.CurrentBookings)
		assert.Equal(t, 12, s.MaxCapacity)
		assert.True(t, s.IsUpcoming)
		assert.Equal(t, dto.ID, s.ClassID)
	}
}

func TestService_CreateClass_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateClassRequest
	}{
		{"zero capacity", models.CreateClassRequest{ClassType: "Yoga", MaxCapacity: 0, Recurrence: recurrence()}},
		{"blank class type", models.CreateClassRequest{ClassType: "  ", MaxCapacity: 5, Recurrence: recurrence()}},
		{"inverted window", models.CreateClassRequest{ClassType: "Yoga", MaxCapacity: 5, Recurrence: func() models.Recurrence {
			r := recurrence()
			r.StartTime, r.EndTime = r.EndTime, r.StartTime
			return r
		}()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)

			_, err := f.svc.CreateClass(context.Background(), tt.req)
			assert.True(t, models.IsValidation(err), "got %v", err)
			f.classes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateClass_StorageError(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.sessions.On("CreateMany", mock.Anything, mock.Anything).Return(nil, errors.New("write conflict"))

	dto, err := f.svc.CreateClass(context.Background(), models.CreateClassRequest{
		ClassType:   "Yoga",
		MaxCapacity: 12,
		Recurrence:  recurrence(),
	})

	require.Error(t, err)
	assert.Nil(t, dto)
	assert.Contains(t, err.Error(), "create class")
	assert.False(t, models.IsValidation(err) || models.IsNotFound(err) || models.IsConflict(err))
}

func TestService_UpdateClass_CapacityBelowBookings(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}, nil)
	f.bookings.On("MaxPerSession", mock.Anything, "c1").Return(6, nil)

	_, err := f.svc.UpdateClass(context.Background(), "c1", models.UpdateClassRequest{ClassType: "Yoga", MaxCapacity: 5})
	assert.ErrorIs(t, err, models.ErrCapacityBelowBookings)
	f.classes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_UpdateClass_CapacityReduced(t *testing.T) {
	f := newServiceFixture(t)
	class := &models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}
	f.classes.On("GetByID", mock.Anything, "c1").Return(class, nil)
	f.bookings.On("MaxPerSession", mock.Anything, "c1").Return(6, nil)
	f.classes.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Class) bool {
		return c.MaxCapacity == 6 && c.ClassType == "Power Yoga"
	})).Return(nil)
	f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{session("s1", "c1", 22)}, nil)
	f.bookings.On("CountBySessions", mock.Anything, []string{"s1"}).Return(map[string]int{"s1": 6}, nil)

	dto, err := f.svc.UpdateClass(context.Background(), "c1", models.UpdateClassRequest{ClassType: "Power Yoga", MaxCapacity: 6})
	require.NoError(t, err)
	assert.Equal(t, 6, dto.MaxCapacity)
	require.Len(t, dto.Sessions, 1)
	assert.Equal(t, 6, dto.Sessions[0].CurrentBookings)
}

func TestService_UpdateClass_IncreaseSkipsBookingCount(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}, nil)
	f.classes.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{}, nil)
	f.bookings.On("CountBySessions", mock.Anything, []string{}).Return(map[string]int{}, nil)

	_, err := f.svc.UpdateClass(context.Background(), "c1", models.UpdateClassRequest{ClassType: "Yoga", MaxCapacity: 20})
	require.NoError(t, err)
	f.bookings.AssertNotCalled(t, "MaxPerSession", mock.Anything, mock.Anything)
}

func TestService_UpdateClass_NotFound(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "nope").Return(nil, models.ErrClassNotFound)

	_, err := f.svc.UpdateClass(context.Background(), "nope", models.UpdateClassRequest{ClassType: "Yoga", MaxCapacity: 5})
	assert.ErrorIs(t, err, models.ErrClassNotFound)
}

func TestService_DeleteClass_CascadesSessions(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1"}, nil)
	f.bookings.On("CountByClass", mock.Anything, "c1").Return(0, nil)
	f.sessions.On("DeleteByClass", mock.Anything, "c1").Return(int64(5), nil)
	f.classes.On("Delete", mock.Anything, "c1").Return(nil)

	require.NoError(t, f.svc.DeleteClass(context.Background(), "c1"))
	f.sessions.AssertExpectations(t)
	f.classes.AssertExpectations(t)
}

func TestService_DeleteClass_BlockedByBookings(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1"}, nil)
	f.bookings.On("CountByClass", mock.Anything, "c1").Return(1, nil)

	err := f.svc.DeleteClass(context.Background(), "c1")
	assert.ErrorIs(t, err, models.ErrBookingsExist)
	assert.True(t, models.IsConflict(err))
	f.sessions.AssertNotCalled(t, "DeleteByClass", mock.Anything, mock.Anything)
	f.classes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_UpdateSession(t *testing.T) {
	current := session("s1", "c1", 22)
	moved := models.UpdateSessionRequest{Date: jan(23), StartTime: current.StartTime, EndTime: current.EndTime}
	unchanged := models.UpdateSessionRequest{Date: current.Date, StartTime: current.StartTime, EndTime: current.EndTime}
	longer := models.UpdateSessionRequest{Date: current.Date, StartTime: current.StartTime, EndTime: civil.Time{Hour: 12}}

	tests := []struct {
		name      string
		req       models.UpdateSessionRequest
		bookings  int
		wantErr   error
		wantWrite bool
	}{
		{"booked session cannot move date", moved, 2, models.ErrScheduleLocked, false},
		{"booked session cannot change window", longer, 1, models.ErrScheduleLocked, false},
		{"booked session accepts unchanged values", unchanged, 2, nil, false},
		{"empty session can move", moved, 0, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			s := current
			f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", MaxCapacity: 10}, nil)
			f.sessions.On("GetByID", mock.Anything, "s1").Return(&s, nil)
			f.bookings.On("CountBySession", mock.Anything, "s1").Return(tt.bookings, nil).Maybe()
			if tt.wantWrite {
				f.sessions.On("Update", mock.Anything, mock.MatchedBy(func(u *models.ClassSession) bool {
					return u.Date == tt.req.Date &&
						u.Schedule.Equal(time.Date(2024, time.January, 23, 10, 0, 0, 0, time.UTC))
				})).Return(nil)
			}

			dto, err := f.svc.UpdateSession(context.Background(), "c1", "s1", tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, dto)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.req.Date, dto.Date)
			}
			if !tt.wantWrite {
				f.sessions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_UpdateSession_InvalidWindow(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.UpdateSession(context.Background(), "c1", "s1", models.UpdateSessionRequest{
		Date: jan(22), StartTime: civil.Time{Hour: 11}, EndTime: civil.Time{Hour: 10},
	})
	assert.True(t, models.IsValidation(err))
}

func TestService_UpdateSession_WrongClass(t *testing.T) {
	f := newServiceFixture(t)
	s := session("s1", "other", 22)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1"}, nil)
	f.sessions.On("GetByID", mock.Anything, "s1").Return(&s, nil)

	_, err := f.svc.UpdateSession(context.Background(), "c1", "s1", models.UpdateSessionRequest{
		Date: jan(23), StartTime: s.StartTime, EndTime: s.EndTime,
	})
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestService_DeleteSession(t *testing.T) {
	t.Run("blocked by bookings", func(t *testing.T) {
		f := newServiceFixture(t)
		s := session("s1", "c1", 22)
		f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1"}, nil)
		f.sessions.On("GetByID", mock.Anything, "s1").Return(&s, nil)
		f.bookings.On("CountBySession", mock.Anything, "s1").Return(1, nil)

		err := f.svc.DeleteSession(context.Background(), "c1", "s1")
		assert.ErrorIs(t, err, models.ErrBookingsExist)
		f.sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleted", func(t *testing.T) {
		f := newServiceFixture(t)
		s := session("s1", "c1", 22)
		f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1"}, nil)
		f.sessions.On("GetByID", mock.Anything, "s1").Return(&s, nil)
		f.bookings.On("CountBySession", mock.Anything, "s1").Return(0, nil)
		f.sessions.On("Delete", mock.Anything, "s1").Return(nil).Once()

		require.NoError(t, f.svc.DeleteSession(context.Background(), "c1", "s1"))
		f.sessions.AssertCalled(t, "Delete", mock.Anything, "s1")
	})
}

func TestService_UpdateClassWithSessions_AbortsWholeBatch(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}, nil)
	f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{
		session("s1", "c1", 22), session("s2", "c1", 24), session("s3", "c1", 26),
	}, nil)
	f.bookings.On("CountBySessions", mock.Anything, []string{"s1", "s2", "s3"}).Return(map[string]int{"s2": 1}, nil)

	next := recurrence()
	_, err := f.svc.UpdateClassWithSessions(context.Background(), "c1", models.UpdateClassWithSessionsRequest{
		ClassType:          "Yoga",
		MaxCapacity:        10,
		SessionIDsToRemove: []string{"s1", "s2", "s3"},
		NewSessions:        &next,
	})
	assert.ErrorIs(t, err, models.ErrBookingsExist)
	f.classes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.sessions.AssertNotCalled(t, "DeleteMany", mock.Anything, mock.Anything)
	f.sessions.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestService_UpdateClassWithSessions_ForeignSession(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}, nil)
	f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{session("s1", "c1", 22)}, nil)

	_, err := f.svc.UpdateClassWithSessions(context.Background(), "c1", models.UpdateClassWithSessionsRequest{
		ClassType:          "Yoga",
		MaxCapacity:        10,
		SessionIDsToRemove: []string{"s9"},
	})
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestService_UpdateClassWithSessions_Applies(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}, nil)
	f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{session("s1", "c1", 22)}, nil).Once()
	f.bookings.On("CountBySessions", mock.Anything, []string{"s1"}).Return(map[string]int{}, nil).Once()
	f.classes.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.sessions.On("DeleteMany", mock.Anything, []string{"s1"}).Return(int64(1), nil)
	f.sessions.On("CreateMany", mock.Anything, mock.MatchedBy(func(ss []models.ClassSession) bool {
		return len(ss) == 5 && ss[0].ClassID == "c1"
	})).Return([]models.ClassSession{}, nil)
	// reload after commit
	f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{}, nil).Once()
	f.bookings.On("CountBySessions", mock.Anything, []string{}).Return(map[string]int{}, nil).Once()

	next := recurrence()
	_, err := f.svc.UpdateClassWithSessions(context.Background(), "c1", models.UpdateClassWithSessionsRequest{
		ClassType:          "Yoga",
		MaxCapacity:        10,
		SessionIDsToRemove: []string{"s1"},
		NewSessions:        &next,
	})
	require.NoError(t, err)
	f.sessions.AssertExpectations(t)
}

func TestService_AddSessions_ClassNotFound(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "nope").Return(nil, models.ErrClassNotFound)

	_, err := f.svc.AddSessions(context.Background(), "nope", recurrence())
	assert.ErrorIs(t, err, models.ErrClassNotFound)
	f.sessions.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestService_ListClasses_GroupsSessionsWithCounts(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("List", mock.Anything).Return([]models.Class{
		{ID: "c1", ClassType: "Pilates", MaxCapacity: 8},
		{ID: "c2", ClassType: "Yoga", MaxCapacity: 10},
	}, nil)
	f.sessions.On("ListByClasses", mock.Anything, []string{"c1", "c2"}).Return([]models.ClassSession{
		session("s1", "c2", 22),
		session("s2", "c1", 24),
		session("s3", "c2", 26),
	}, nil)
	f.bookings.On("CountBySessions", mock.Anything, []string{"s1", "s2", "s3"}).
		Return(map[string]int{"s1": 4}, nil)

	classes, err := f.svc.ListClasses(context.Background())

	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, "Pilates", classes[0].ClassType)
	require.Len(t, classes[0].Sessions, 1)
	assert.Equal(t, 8, classes[0].Sessions[0].MaxCapacity)

	require.Len(t, classes[1].Sessions, 2)
	assert.Equal(t, 4, classes[1].Sessions[0].CurrentBookings)
	assert.Equal(t, 0, classes[1].Sessions[1].CurrentBookings)
	assert.Equal(t, 60, classes[1].Sessions[0].DurationInMinutes)
	assert.True(t, classes[1].Sessions[0].IsUpcoming)
}

func TestService_GetClass_NotFound(t *testing.T) {
	f := newServiceFixture(t)
	f.classes.On("GetByID", mock.Anything, "nope").Return(nil, models.ErrClassNotFound)

	_, err := f.svc.GetClass(context.Background(), "nope")

	assert.ErrorIs(t, err, models.ErrClassNotFound)
}

type recordingListener struct {
	memberIDs []string
}

func (l *recordingListener) BookingsChanged(_ context.Context, memberID string) {
	l.memberIDs = append(l.memberIDs, memberID)
}

func TestService_UpdateClass_RenameNotifiesBookedMembers(t *testing.T) {
	tests := []struct {
		name      string
		req       models.UpdateClassRequest
		wantNotified []string
	}{
		{"renamed", models.UpdateClassRequest{ClassType: "Power Yoga", MaxCapacity: 10}, []string{"m1", "m2"}},
		{"padding only", models.UpdateClassRequest{ClassType: " Yoga ", MaxCapacity: 10}, nil},
		{"capacity only", models.UpdateClassRequest{ClassType: "Yoga", MaxCapacity: 15}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			listener := &recordingListener{}
			f.svc.SetChangeListener(listener)
			f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}, nil)
			f.classes.On("Update", mock.Anything, mock.Anything).Return(nil)
			f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{}, nil)
			f.bookings.On("CountBySessions", mock.Anything, []string{}).Return(map[string]int{}, nil)
			if tt.wantNotified != nil {
				f.bookings.On("MemberIDsByClass", mock.Anything, "c1").Return(tt.wantNotified, nil)
			}

			_, err := f.svc.UpdateClass(context.Background(), "c1", tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantNotified, listener.memberIDs)
			if tt.wantNotified == nil {
				f.bookings.AssertNotCalled(t, "MemberIDsByClass", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_UpdateClassWithSessions_RenameNotifiesBookedMembers(t *testing.T) {
	f := newServiceFixture(t)
	listener := &recordingListener{}
	f.svc.SetChangeListener(listener)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}, nil)
	f.classes.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("MemberIDsByClass", mock.Anything, "c1").Return([]string{"m1"}, nil)
	f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{}, nil)
	f.bookings.On("CountBySessions", mock.Anything, []string{}).Return(map[string]int{}, nil)

	_, err := f.svc.UpdateClassWithSessions(context.Background(), "c1", models.UpdateClassWithSessionsRequest{
		ClassType:   "Hatha",
		MaxCapacity: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, listener.memberIDs)
}

func TestService_UpdateClass_MemberLookupFailureKeepsUpdate(t *testing.T) {
	f := newServiceFixture(t)
	listener := &recordingListener{}
	f.svc.SetChangeListener(listener)
	f.classes.On("GetByID", mock.Anything, "c1").Return(&models.Class{ID: "c1", ClassType: "Yoga", MaxCapacity: 10}, nil)
	f.classes.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("MemberIDsByClass", mock.Anything, "c1").Return(nil, errors.New("timeout"))
	f.sessions.On("ListByClass", mock.Anything, "c1").Return([]models.ClassSession{}, nil)
	f.bookings.On("CountBySessions", mock.Anything, []string{}).Return(map[string]int{}, nil)

	dto, err := f.svc.UpdateClass(context.Background(), "c1", models.UpdateClassRequest{ClassType: "Hatha", MaxCapacity: 10})

	require.NoError(t, err)
	assert.Equal(t, "Hatha", dto.ClassType)
	assert.Empty(t, listener.memberIDs)
}
