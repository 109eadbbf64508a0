package contactControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	err      error
	lastName string
}

func (m *stubMailer) SendContact(name, email, message string) error {
	m.lastName = name
	return m.err
}

func submit(t *testing.T, m *stubMailer, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/contact", SubmitContact(m))

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitContact(t *testing.T) {
	m := &stubMailer{}
	w := submit(t, m, gin.H{"name": "Asha", "email": "asha@example.com", "message": "Do you ship to Goa?"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha", m.lastName)
}

func TestSubmitContactValidation(t *testing.T) {
	m := &stubMailer{}
	w := submit(t, m, gin.H{"name": "Asha", "email": "not-an-email", "message": "hi"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, m.lastName)
}

func TestSubmitContactMailFailure(t *testing.T) {
	m := &stubMailer{err: errors.New("smtp down")}
	w := submit(t, m, gin.H{"name": "Asha", "email": "asha@example.com", "message": "hi"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
