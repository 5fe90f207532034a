package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marinewatch/maritime-backend/internal/models"
)

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, user models.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockUserCollection) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVesselCollection is a mock implementation of db.VesselCollection
type MockVesselCollection struct {
	mock.Mock
}

func (m *MockVesselCollection) InsertVessel(ctx context.Context, vessel models.Vessel) (*models.Vessel, error) {
	args := m.Called(ctx, vessel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vessel), args.Error(1)
}

func (m *MockVesselCollection) FindVessels(ctx context.Context, filter bson.M) ([]models.Vessel, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vessel), args.Error(1)
}

func (m *MockVesselCollection) FindVesselIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockVesselCollection) FindVesselByID(ctx context.Context, id string, filter bson.M) (*models.Vessel, error) {
	args := m.Called(ctx, id, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vessel), args.Error(1)
}

func (m *MockVesselCollection) UpdateVessel(ctx context.Context, id string, update bson.M) (*models.Vessel, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vessel), args.Error(1)
}

func (m *MockVesselCollection) UpdateLastPosition(ctx context.Context, id string, loc models.Location) error {
	args := m.Called(ctx, id, loc)
	return args.Error(0)
}

func (m *MockVesselCollection) DeleteVessel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPortCollection is a mock implementation of db.PortCollection
type MockPortCollection struct {
	mock.Mock
}

func (m *MockPortCollection) InsertPort(ctx context.Context, port models.Port) (*models.Port, error) {
	args := m.Called(ctx, port)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Port), args.Error(1)
}

func (m *MockPortCollection) FindPorts(ctx context.Context) ([]models.Port, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Port), args.Error(1)
}

func (m *MockPortCollection) FindPortByID(ctx context.Context, id string) (*models.Port, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Port), args.Error(1)
}

// MockVoyageCollection is a mock implementation of db.VoyageCollection
type MockVoyageCollection struct {
	mock.Mock
}

func (m *MockVoyageCollection) InsertVoyage(ctx context.Context, voyage models.Voyage) (*models.Voyage, error) {
	args := m.Called(ctx, voyage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Voyage), args.Error(1)
}

func (m *MockVoyageCollection) FindVoyages(ctx context.Context, filter bson.M) ([]models.Voyage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Voyage), args.Error(1)
}

func (m *MockVoyageCollection) FindVoyageByID(ctx context.Context, id string) (*models.Voyage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Voyage), args.Error(1)
}

func (m *MockVoyageCollection) RecordArrival(ctx context.Context, id string) (*models.Voyage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Voyage), args.Error(1)
}

func (m *MockVoyageCollection) MarkDelayed(ctx context.Context, id string) (*models.Voyage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Voyage), args.Error(1)
}

func (m *MockVoyageCollection) MarkOnSchedule(ctx context.Context, id string) (*models.Voyage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Voyage), args.Error(1)
}

// MockHistoryCollection is a mock implementation of db.HistoryCollection
type MockHistoryCollection struct {
	mock.Mock
}

func (m *MockHistoryCollection) AppendTrackPoint(ctx context.Context, vesselID primitive.ObjectID, lat, lon float64) (*models.TrackPoint, error) {
	args := m.Called(ctx, vesselID, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackPoint), args.Error(1)
}

func (m *MockHistoryCollection) Replay(ctx context.Context, vesselID primitive.ObjectID) ([]models.TrackPoint, error) {
	args := m.Called(ctx, vesselID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrackPoint), args.Error(1)
}

func (m *MockHistoryCollection) Recent(ctx context.Context, filter bson.M, limit int64) ([]models.TrackPoint, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrackPoint), args.Error(1)
}

func (m *MockHistoryCollection) FindTrackPointByID(ctx context.Context, id string) (*models.TrackPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackPoint), args.Error(1)
}

// MockEventCollection is a mock implementation of db.EventCollection
type MockEventCollection struct {
	mock.Mock
}

func (m *MockEventCollection) InsertEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventCollection) FindEvents(ctx context.Context, filter bson.M, limit int64) ([]models.Event, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventCollection) FindEventByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

// MockNotificationCollection is a mock implementation of db.NotificationCollection
type MockNotificationCollection struct {
	mock.Mock
}

func (m *MockNotificationCollection) InsertNotification(ctx context.Context, notification models.Notification) (*models.Notification, error) {
	args := m.Called(ctx, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationCollection) FindNotifications(ctx context.Context) ([]models.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationCollection) FindNotificationByID(ctx context.Context, id string) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationCollection) MarkRead(ctx context.Context, id string, read bool) error {
	args := m.Called(ctx, id, read)
	return args.Error(0)
}
