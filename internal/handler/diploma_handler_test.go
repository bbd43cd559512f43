package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibpath/ibpath-api/internal/service"
)

func performDiplomaCheck(t *testing.T, payload string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewDiplomaHandler(service.NewDiplomaService("matrix", nil, nil, nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/diploma/check", bytes.NewBufferString(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Check(c)
	return rec
}

func TestDiplomaHandlerCheckSuccess(t *testing.T) {
	payload := `{
		"subjects": [
			{"course_id": "math-aa", "course_name": "Mathematics AA", "level": "HL", "grade": 6},
			{"course_id": "physics", "course_name": "Physics", "level": "HL", "grade": 5},
			{"course_id": "chemistry", "course_name": "Chemistry", "level": "HL", "grade": 5},
			{"course_id": "english-a", "course_name": "English A", "level": "SL", "grade": 6},
			{"course_id": "spanish-b", "course_name": "Spanish B", "level": "SL", "grade": 5},
			{"course_id": "history", "course_name": "History", "level": "SL", "grade": 5}
		],
		"tok_grade": "A",
		"ee_grade": "B"
	}`

	rec := performDiplomaCheck(t, payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			IsValid     bool `json:"is_valid"`
			TotalPoints int  `json:"total_points"`
			BonusPoints int  `json:"bonus_points"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.IsValid)
	assert.Equal(t, 3, envelope.Data.BonusPoints)
	assert.Equal(t, 35, envelope.Data.TotalPoints)
}

func TestDiplomaHandlerCheckInvalidPayload(t *testing.T) {
	rec := performDiplomaCheck(t, `{"tok_grade": "Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiplomaHandlerCheckMalformedJSON(t *testing.T) {
	rec := performDiplomaCheck(t, `{"subjects": [`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
