package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/limaJavier/coursegrid/pkg/model"
)

const inputBody = `{
	"capacities": [{ "department": "CS", "semester": 4, "students": 90 }],
	"courses": [
		{ "department": "CS", "semester": 4, "code": "CS2001", "name": "Data Structures", "lecturesNeeded": 2 },
		{ "department": "CS", "semester": 4, "code": "CL2001", "name": "Data Structures Lab", "isLab": true }
	],
	"cohort": [
		{ "department": "CS", "semester": 4, "section": "A", "day": "Monday", "timeSlot": "08:00-09:15", "courseCode": "SS1012", "courseName": "Functional English" }
	],
	"electives": [
		{ "code": "SS2001", "name": "Psychology", "type": "General", "creditHours": 2 }
	],
	"demand": { "SS2001": 70 }
}`

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(model.DefaultParameters(), zap.NewNop())
}

func perform(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	router.ServeHTTP(recorder, request)
	return recorder
}

func generate(t *testing.T, router *gin.Engine, target string) runResponse {
	t.Helper()

	recorder := perform(router, http.MethodPost, target, inputBody)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response runResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestIndex(t *testing.T) {
	recorder := perform(newTestRouter(), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

func TestGenerateTimetable(t *testing.T) {
	//** Arrange
	router := newTestRouter()

	//** Act
	response := generate(t, router, "/generate-timetable?strategy=exhaustive&seed=7&electives=true")

	//** Assert
	require.Len(t, response.Engines, 2)
	core := response.Engines[0]
	assert.Equal(t, model.CoreEngine, core.Engine)
	assert.True(t, core.Verified)
	assert.True(t, core.Complete)
	// Two sections, each with two lectures and one lab session
	assert.Equal(t, uint64(6), core.Stats.Placed)
	assert.Equal(t, uint64(1), core.Stats.Cohort)
	assert.Empty(t, core.Sections)

	electives := response.Engines[1]
	assert.Equal(t, model.ElectiveEngine, electives.Engine)
	assert.Equal(t, uint64(2), electives.Stats.SectionsCreated)
	assert.Empty(t, response.Demand)

	t.Run("Stored run", func(t *testing.T) {
		recorder := perform(router, http.MethodGet, "/timetables/"+response.ID, "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var stored runResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stored))
		require.Len(t, stored.Engines[0].Sections, 2)
		section := stored.Engines[0].Sections[0]
		assert.Equal(t, "CS_S4_SecA", section.ID)
		assert.Len(t, section.Occurrences, 4)
		assert.True(t, section.Occurrences[0].Fixed)
		assert.Equal(t, "08:00-09:15", section.Occurrences[0].Time)
	})

	t.Run("Csv download", func(t *testing.T) {
		recorder := perform(router, http.MethodGet, "/timetables/"+response.ID+"/download?format=csv", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "text/csv", recorder.Header().Get("Content-Type"))
		assert.Contains(t, recorder.Header().Get("Content-Disposition"), "core_"+response.ID)
		assert.True(t, strings.HasPrefix(recorder.Body.String(), "section,time_slot,Monday"))
	})

	t.Run("Pdf download of the elective timetable", func(t *testing.T) {
		recorder := perform(router, http.MethodGet, "/timetables/"+response.ID+"/download?format=pdf&engine=elective", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("Unsupported format", func(t *testing.T) {
		recorder := perform(router, http.MethodGet, "/timetables/"+response.ID+"/download?format=xlsx", "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Metrics", func(t *testing.T) {
		recorder := perform(router, http.MethodGet, "/metrics", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		body := recorder.Body.String()
		assert.Contains(t, body, `timetable_runs_total{engine="core",outcome="complete"} 1`)
		assert.Contains(t, body, `timetable_occurrences_total{engine="core",result="placed"} 6`)
		assert.Contains(t, body, "timetable_stored_runs 1")
	})
}

func TestGenerateElectives(t *testing.T) {
	response := generate(t, newTestRouter(), "/generate-electives?roomLedger=true")

	require.Len(t, response.Engines, 1)
	assert.Equal(t, model.ElectiveEngine, response.Engines[0].Engine)
	assert.True(t, response.Engines[0].Verified)
	// Demand supplied with the input is never replaced by a simulation
	assert.Empty(t, response.Demand)
}

func TestGenerateErrors(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"Malformed body", "/generate-timetable", "{", http.StatusBadRequest},
		{"No usable input", "/generate-timetable", "{}", http.StatusBadRequest},
		{"Negative enrollment", "/generate-timetable", `{"capacities": [{"department": "CS", "semester": 1, "students": -50}]}`, http.StatusBadRequest},
		{"Invalid seed", "/generate-timetable?seed=-1", inputBody, http.StatusBadRequest},
		{"Invalid strategy", "/generate-timetable?strategy=genetic", inputBody, http.StatusBadRequest},
		{"Invalid flag", "/generate-electives?simulateDemand=maybe", inputBody, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := perform(router, http.MethodPost, tc.target, tc.body)

			assert.Equal(t, tc.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"error"`)
		})
	}
}

func TestUnknownRun(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/timetables/missing", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/timetables/missing/download", "").Code)
}
