package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdesk/phoneroom-booking-backend/internal/auth"
	"github.com/quietdesk/phoneroom-booking-backend/internal/booking"
	bookingHttp "github.com/quietdesk/phoneroom-booking-backend/internal/booking/http"
	"github.com/quietdesk/phoneroom-booking-backend/internal/room"
	"github.com/quietdesk/phoneroom-booking-backend/internal/user"
)

type testEnv struct {
	router     *gin.Engine
	jwtManager *auth.JWTManager
	userSvc    user.Service
	roomSvc    room.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", 30*time.Minute)
	userSvc := user.NewService(user.NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4))
	roomSvc := room.NewService(room.NewMemoryRepository())

	repo := booking.NewMemoryRepository()
	bookingSvc := booking.NewService(repo, booking.NewChecker(repo), roomSvc, nil)

	router := gin.New()
	v1 := router.Group("/v1")
	handler := bookingHttp.NewHandler(bookingSvc, userSvc)
	bookingHttp.RegisterRoutes(v1, handler, auth.AuthRequired(jwtManager))

	return &testEnv{
		router:     router,
		jwtManager: jwtManager,
		userSvc:    userSvc,
		roomSvc:    roomSvc,
	}
}

func (e *testEnv) createUser(t *testing.T, email string) (id, token string) {
	t.Helper()
	u, err := e.userSvc.Register(context.Background(), email, "password123", "")
	require.NoError(t, err)

	token, err = e.jwtManager.GenerateAccessToken(u.ID)
	require.NoError(t, err)
	return u.ID, token
}

func (e *testEnv) createRoom(t *testing.T, name string) *room.Room {
	t.Helper()
	r, err := e.roomSvc.Create(context.Background(), room.CreateRequest{Name: name, Capacity: 1})
	require.NoError(t, err)
	return r
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func ts(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestCreateBookingEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "alice@example.com")
	booth := env.createRoom(t, "Booth A")

	t.Run("requires authentication", func(t *testing.T) {
		w := env.do("POST", "/v1/bookings", gin.H{}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		w := env.do("POST", "/v1/bookings", gin.H{"start_time": ts(9, 0)}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed room id", func(t *testing.T) {
		w := env.do("POST", "/v1/bookings", gin.H{
			"room_id":    "not-a-uuid",
			"start_time": ts(9, 0),
			"end_time":   ts(10, 0),
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		w := env.do("POST", "/v1/bookings", gin.H{
			"room_id":    booth.ID,
			"start_time": ts(10, 0),
			"end_time":   ts(9, 0),
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("creates a booking", func(t *testing.T) {
		w := env.do("POST", "/v1/bookings", gin.H{
			"room_id":    booth.ID,
			"start_time": ts(9, 0),
			"end_time":   ts(10, 0),
			"note":       "quarterly review call",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, booth.ID, resp.RoomID)
		require.NotNil(t, resp.Note)
		assert.Equal(t, "quarterly review call", *resp.Note)
	})

	t.Run("conflicting booking returns 409", func(t *testing.T) {
		w := env.do("POST", "/v1/bookings", gin.H{
			"room_id":    booth.ID,
			"start_time": ts(9, 30),
			"end_time":   ts(10, 30),
		}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("adjacent booking returns 201", func(t *testing.T) {
		w := env.do("POST", "/v1/bookings", gin.H{
			"room_id":    booth.ID,
			"start_time": ts(10, 0),
			"end_time":   ts(11, 0),
		}, token)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown room returns 404", func(t *testing.T) {
		w := env.do("POST", "/v1/bookings", gin.H{
			"room_id":    "c2a7ad02-1111-4a5b-9c3d-000000000000",
			"start_time": ts(12, 0),
			"end_time":   ts(13, 0),
		}, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCancelBookingEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.createUser(t, "owner@example.com")
	_, strangerToken := env.createUser(t, "stranger@example.com")
	booth := env.createRoom(t, "Booth A")

	w := env.do("POST", "/v1/bookings", gin.H{
		"room_id":    booth.ID,
		"start_time": ts(9, 0),
		"end_time":   ts(10, 0),
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var created bookingHttp.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("stranger gets 403", func(t *testing.T) {
		w := env.do("DELETE", "/v1/bookings/"+created.ID, nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner gets 204", func(t *testing.T) {
		w := env.do("DELETE", "/v1/bookings/"+created.ID, nil, ownerToken)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("second cancel gets 404", func(t *testing.T) {
		w := env.do("DELETE", "/v1/bookings/"+created.ID, nil, ownerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAvailabilityEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "alice@example.com")
	booth := env.createRoom(t, "Booth A")

	w := env.do("POST", "/v1/bookings", gin.H{
		"room_id":    booth.ID,
		"start_time": ts(10, 0),
		"end_time":   ts(11, 0),
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("occupied slot is unavailable", func(t *testing.T) {
		path := "/v1/rooms/" + booth.ID + "/availability?start=2024-01-01T10:30:00Z&end=2024-01-01T11:30:00Z"
		w := env.do("GET", path, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.AvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Available)
	})

	t.Run("adjacent slot is available", func(t *testing.T) {
		path := "/v1/rooms/" + booth.ID + "/availability?start=2024-01-01T11:00:00Z&end=2024-01-01T12:00:00Z"
		w := env.do("GET", path, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.AvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Available)
	})

	t.Run("missing query parameter gets 400", func(t *testing.T) {
		path := "/v1/rooms/" + booth.ID + "/availability?start=2024-01-01T11:00:00Z"
		w := env.do("GET", path, nil, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("free slots around the booking", func(t *testing.T) {
		path := "/v1/rooms/" + booth.ID + "/free-slots?from=2024-01-01T09:00:00Z&to=2024-01-01T12:00:00Z"
		w := env.do("GET", path, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var slots []bookingHttp.TimeSlotResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
		require.Len(t, slots, 2)
		assert.Equal(t, ts(9, 0), slots[0].StartTime)
		assert.Equal(t, ts(10, 0), slots[0].EndTime)
		assert.Equal(t, ts(11, 0), slots[1].StartTime)
		assert.Equal(t, ts(12, 0), slots[1].EndTime)
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.createUser(t, "alice@example.com")
	_, bobToken := env.createUser(t, "bob@example.com")
	booth := env.createRoom(t, "Booth A")

	w := env.do("POST", "/v1/bookings", gin.H{
		"room_id":    booth.ID,
		"start_time": ts(9, 0),
		"end_time":   ts(10, 0),
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do("POST", "/v1/bookings", gin.H{
		"room_id":    booth.ID,
		"start_time": ts(10, 0),
		"end_time":   ts(11, 0),
	}, bobToken)
	require.Equal(t, http.StatusCreated, w.Code)

	type pageResponse struct {
		Items []bookingHttp.BookingResponse `json:"items"`
		Total int                           `json:"total"`
	}

	t.Run("default listing shows own bookings only", func(t *testing.T) {
		w := env.do("GET", "/v1/bookings", nil, aliceToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp pageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, aliceID, resp.Items[0].UserID)
	})

	t.Run("room calendar shows all bookings", func(t *testing.T) {
		w := env.do("GET", "/v1/bookings?room_id="+booth.ID, nil, aliceToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp pageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
	})
}
