package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tradelog/trade-journal-backend/internal/api/handlers"
	"github.com/tradelog/trade-journal-backend/internal/api/request"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/testutil"
)

// TestCapitalHandler_Record tests the manual capital update endpoint.
//
// WHY: The handler is the last line translating validation and service
// sentinels into status codes; a wrong mapping turns a bad request into a
// confusing 500.
func TestCapitalHandler_Record(t *testing.T) {
	t.Run("records a manual snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		handler := handlers.NewCapitalHandler(testutil.NewTestCapitalService(t, db, nil))

		req := testutil.NewAuthedJSONRequest(t, http.MethodPost, "/api/capital", user.ID, nil,
			request.RecordCapitalChange{Amount: 100000, Date: "2024-03-01"})
		rec := httptest.NewRecorder()

		handler.Record(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var change model.CapitalChange
		testutil.DecodeResponse(t, rec, &change)
		if change.Amount != 100000 {
			t.Errorf("Expected amount 100000, got %v", change.Amount)
		}
		if change.Metadata.Kind != model.ChangeManual {
			t.Errorf("Expected manual change kind, got %v", change.Metadata.Kind)
		}
	})

	t.Run("records an underwater balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		handler := handlers.NewCapitalHandler(testutil.NewTestCapitalService(t, db, nil))

		req := testutil.NewAuthedJSONRequest(t, http.MethodPost, "/api/capital", user.ID, nil,
			request.RecordCapitalChange{Amount: -100, Date: "2024-03-01"})
		rec := httptest.NewRecorder()

		handler.Record(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var change model.CapitalChange
		testutil.DecodeResponse(t, rec, &change)
		if change.Amount != -100 {
			t.Errorf("Expected amount -100, got %v", change.Amount)
		}
	})

	t.Run("malformed date is a 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		handler := handlers.NewCapitalHandler(testutil.NewTestCapitalService(t, db, nil))

		req := testutil.NewAuthedJSONRequest(t, http.MethodPost, "/api/capital", user.ID, nil,
			request.RecordCapitalChange{Amount: 100000, Date: "03/01/2024"})
		rec := httptest.NewRecorder()

		handler.Record(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}

// TestCapitalHandler_DailyStats tests the daily OHLC endpoint.
func TestCapitalHandler_DailyStats(t *testing.T) {
	t.Run("missing date parameter is a 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		handler := handlers.NewCapitalHandler(testutil.NewTestCapitalService(t, db, nil))

		req := testutil.NewAuthedRequest(http.MethodGet, "/api/capital/daily", user.ID, nil)
		rec := httptest.NewRecorder()

		handler.DailyStats(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("day without data is a 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		handler := handlers.NewCapitalHandler(testutil.NewTestCapitalService(t, db, nil))

		req := testutil.NewAuthedRequest(http.MethodGet, "/api/capital/daily?date=2024-03-01", user.ID, nil)
		rec := httptest.NewRecorder()

		handler.DailyStats(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})
}

// TestCapitalHandler_Snapshots tests the range listing endpoint.
func TestCapitalHandler_Snapshots(t *testing.T) {
	t.Run("inverted range is a 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		handler := handlers.NewCapitalHandler(testutil.NewTestCapitalService(t, db, nil))

		req := testutil.NewAuthedRequest(http.MethodGet,
			"/api/capital/snapshots?start_date=2024-03-05&end_date=2024-03-01", user.ID, nil)
		rec := httptest.NewRecorder()

		handler.Snapshots(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}
