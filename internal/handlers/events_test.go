package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marinewatch/maritime-backend/internal/apperr"
	"github.com/marinewatch/maritime-backend/internal/models"
)

func TestEventHandler_List(t *testing.T) {
	t.Run("fleet-wide events pass the scope filter", func(t *testing.T) {
		events := new(MockEventCollection)
		vessels := new(MockVesselCollection)
		handler := NewEventHandler(events, vessels)

		visible := []primitive.ObjectID{primitive.NewObjectID()}
		vessels.On("FindVesselIDs", mock.Anything, bson.M{"status": models.VesselStatusActive}).
			Return(visible, nil)
		events.On("FindEvents", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
			or, ok := filter["$or"].(bson.A)
			return ok && len(or) == 3
		}), int64(0)).Return([]models.Event{
			{Type: "Storm", Details: "Category 2 Cyclone developing."},
		}, nil)

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/events", nil), models.RoleOperator)
		rr := httptest.NewRecorder()
		handler.List(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		events.AssertExpectations(t)
	})

	t.Run("vessel filter respects scope", func(t *testing.T) {
		events := new(MockEventCollection)
		vessels := new(MockVesselCollection)
		handler := NewEventHandler(events, vessels)

		vesselID := primitive.NewObjectID()
		vessels.On("FindVesselByID", mock.Anything, vesselID.Hex(), bson.M{"status": models.VesselStatusActive}).
			Return(&models.Vessel{ID: vesselID}, nil)
		events.On("FindEvents", mock.Anything, bson.M{"vessel_id": vesselID}, int64(0)).
			Return([]models.Event(nil), nil)

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/events?vessel="+vesselID.Hex(), nil), models.RoleAnalyst)
		rr := httptest.NewRecorder()
		handler.List(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}

func TestEventHandler_Get_FollowsVesselScope(t *testing.T) {
	get := func(handler *EventHandler, req *http.Request) *httptest.ResponseRecorder {
		router := chi.NewRouter()
		router.Get("/api/events/{id}", handler.Get)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("fleet-wide event needs no vessel lookup", func(t *testing.T) {
		events := new(MockEventCollection)
		vessels := new(MockVesselCollection)
		handler := NewEventHandler(events, vessels)

		event := &models.Event{ID: primitive.NewObjectID(), Type: "Storm", Details: "Category 2 Cyclone developing."}
		events.On("FindEventByID", mock.Anything, event.ID.Hex()).Return(event, nil)

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/events/"+event.ID.Hex(), nil), models.RoleOperator)
		rr := get(handler, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		vessels.AssertNotCalled(t, "FindVesselByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("event of out-of-scope vessel reads as not found", func(t *testing.T) {
		events := new(MockEventCollection)
		vessels := new(MockVesselCollection)
		handler := NewEventHandler(events, vessels)

		vesselID := primitive.NewObjectID()
		event := &models.Event{ID: primitive.NewObjectID(), VesselID: &vesselID, Type: "Collision"}
		events.On("FindEventByID", mock.Anything, event.ID.Hex()).Return(event, nil)
		vessels.On("FindVesselByID", mock.Anything, vesselID.Hex(), bson.M{"status": models.VesselStatusActive}).
			Return(nil, apperr.NotFound("vessel not found"))

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/events/"+event.ID.Hex(), nil), models.RoleAnalyst)
		rr := get(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body errorBody
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "event not found", body.Error.Message)
		vessels.AssertExpectations(t)
	})
}

func TestEventHandler_Create(t *testing.T) {
	t.Run("fleet-wide event", func(t *testing.T) {
		events := new(MockEventCollection)
		vessels := new(MockVesselCollection)
		handler := NewEventHandler(events, vessels)

		events.On("InsertEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
			return e.VesselID == nil && e.Type == "Storm"
		})).Return(&models.Event{ID: primitive.NewObjectID(), Type: "Storm"}, nil)

		body := []byte(`{"type":"Storm","lat":12.0,"lon":68.0,"details":"Category 2 Cyclone developing."}`)
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.Create(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		vessels.AssertNotCalled(t, "FindVesselByID", mock.Anything, mock.Anything, mock.Anything)
		events.AssertExpectations(t)
	})

	t.Run("vessel-correlated event resolves the reference", func(t *testing.T) {
		events := new(MockEventCollection)
		vessels := new(MockVesselCollection)
		handler := NewEventHandler(events, vessels)

		vesselID := primitive.NewObjectID()
		vessels.On("FindVesselByID", mock.Anything, vesselID.Hex(), bson.M{}).
			Return(&models.Vessel{ID: vesselID}, nil)
		events.On("InsertEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
			return e.VesselID != nil && *e.VesselID == vesselID
		})).Return(&models.Event{ID: primitive.NewObjectID()}, nil)

		body := fmt.Sprintf(`{"vessel_id":%q,"type":"Collision","location":"3.0,75.0","details":"minor contact"}`, vesselID.Hex())
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()
		handler.Create(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		events.AssertExpectations(t)
	})

	t.Run("missing details rejected", func(t *testing.T) {
		events := new(MockEventCollection)
		handler := NewEventHandler(events, new(MockVesselCollection))

		body := []byte(`{"type":"Storm","lat":12.0,"lon":68.0}`)
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.Create(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		events.AssertNotCalled(t, "InsertEvent", mock.Anything, mock.Anything)
	})
}
