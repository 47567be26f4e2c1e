package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itprodirect/surplus-backend/internal/contact"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
)

type fakeContactService struct {
	gotSubmission contact.Submission
	message       string
	err           error
}

func (f *fakeContactService) Submit(_ context.Context, sub contact.Submission) (string, error) {
	f.gotSubmission = sub
	if f.err != nil {
		return "", f.err
	}
	return f.message, nil
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSubmitContactSuccess(t *testing.T) {
	svc := &fakeContactService{message: contact.SuccessMessage}
	handler := SubmitContact(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(
		`{"name":"Dana Smith","email":"dana@example.com","message":"Looking for sector antennas."}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, contact.SuccessMessage, body["message"])
	assert.Equal(t, "Dana Smith", svc.gotSubmission.Name)
}

func TestSubmitContactValidationError(t *testing.T) {
	svc := &fakeContactService{
		err: pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").
			WithDetails([]string{"Email is required"}),
	}
	handler := SubmitContact(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Dana"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, []any{"Email is required"}, body["details"])
}

func TestSubmitContactMalformedBody(t *testing.T) {
	handler := SubmitContact(&fakeContactService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitContactDeliveryError(t *testing.T) {
	svc := &fakeContactService{
		err: pkgerrors.New(pkgerrors.CodeDelivery, "Failed to send message. Please try again."),
	}
	handler := SubmitContact(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(
		`{"name":"Dana","email":"dana@example.com","message":"0123456789"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "Failed to send message. Please try again.", body["error"])
}
