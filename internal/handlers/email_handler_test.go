package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vansh-agarwal/Agent/internal/models"
)

type memEmailStore struct {
	emails []models.EmailNotification
}

func (m *memEmailStore) Store(_ context.Context, email *models.EmailNotification) error {
	email.ID = int64(len(m.emails) + 1)
	m.emails = append(m.emails, *email)
	return nil
}

func (m *memEmailStore) FindRecent(_ context.Context, userEmail string, limit int) ([]models.EmailNotification, error) {
	var out []models.EmailNotification
	for i := len(m.emails) - 1; i >= 0 && len(out) < limit; i-- {
		if m.emails[i].UserEmail == userEmail {
			out = append(out, m.emails[i])
		}
	}
	return out, nil
}

func (m *memEmailStore) ListPending(_ context.Context) ([]models.EmailNotification, error) {
	var out []models.EmailNotification
	for _, e := range m.emails {
		if !e.Sent {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubNotifier struct {
	sent int
	err  error
}

func (n *stubNotifier) Send(to []string, subject, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent++
	return nil
}

func sendEmailRequest() (*httptest.ResponseRecorder, *http.Request) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	body := `{"recipient":"ops@example.com","subject":"deploy","body":"done"}`
	req := httptest.NewRequest(http.MethodPost, "/api/emails/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return w, req
}

func TestSendDeliveredEmailLeavesQueueEmpty(t *testing.T) {
	store := &memEmailStore{}
	notifier := &stubNotifier{}
	h := NewEmailHandler(store, notifier)

	w, req := sendEmailRequest()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h.Send(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, notifier.sent)
	require.Len(t, store.emails, 1)
	require.True(t, store.emails[0].Sent)

	pending, err := store.ListPending(context.Background())
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestSendFailedDeliveryStaysQueued(t *testing.T) {
	store := &memEmailStore{}
	notifier := &stubNotifier{err: errors.New("smtp: connection refused")}
	h := NewEmailHandler(store, notifier)

	w, req := sendEmailRequest()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h.Send(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, store.emails, 1)
	require.False(t, store.emails[0].Sent)

	pending, err := store.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
}
