package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mauv0809/pelada-pro/internal/metrics"
	"github.com/mauv0809/pelada-pro/internal/pelada"
)

func testDetails() pelada.MatchDetails {
	return pelada.MatchDetails{
		Date:           "2024-03-10",
		Time:           "19:00",
		Location:       "Arena Central",
		OrganizerPhone: "+55 (11) 98765-4321",
		TeamsCount:     2,
	}
}

func TestInviteMessage_ReturnsGeneratedText(t *testing.T) {
	mockJSONResponse := `{
		"candidates": [{
			"content": { "parts": [{ "text": "⚽ Bora galera, pelada no domingo!" }] }
		}]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	m := metrics.NewMock()
	client := NewClient(server.URL, "test-key", "gemini-2.5-flash", m)

	msg := client.InviteMessage(context.Background(), testDetails())
	assert.Equal(t, "⚽ Bora galera, pelada no domingo!", msg)
	assert.Equal(t, 1, m.MessagesGenerated())
	assert.Equal(t, 0, m.MessageFallbacks())
}

func TestInviteMessage_FallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	m := metrics.NewMock()
	client := NewClient(server.URL, "test-key", "gemini-2.5-flash", m)

	msg := client.InviteMessage(context.Background(), testDetails())
	assert.Contains(t, msg, "Bora pra pelada! Confirme sua presença:")
	assert.Contains(t, msg, "https://wa.me/5511987654321")
	assert.Equal(t, 1, m.MessageFallbacks())
}

func TestInviteMessage_NoPhoneUsesPlaceholderLink(t *testing.T) {
	m := metrics.NewMock()
	client := NewClient("http://unused", "", "gemini-2.5-flash", m)

	details := testDetails()
	details.OrganizerPhone = ""
	msg := client.InviteMessage(context.Background(), details)
	assert.Contains(t, msg, "[Link Indisponível - Adicione o telefone do organizador]")
}

func TestReminderMessage_FallsBackWithoutAPIKey(t *testing.T) {
	m := metrics.NewMock()
	client := NewClient("http://unused", "", "gemini-2.5-flash", m)

	msg := client.ReminderMessage(context.Background(), testDetails(), []pelada.Player{{Name: "Lucas"}})
	assert.Equal(t, "Galera, jogo amanhã! Bora confirmar!", msg)
	assert.Equal(t, 1, m.MessageFallbacks())
}

func TestReminderMessage_SendsConfirmedNamesInPrompt(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprintln(w, `{"candidates":[{"content":{"parts":[{"text":"Bora!"}]}}]}`)
	}))
	defer server.Close()

	m := metrics.NewMock()
	client := NewClient(server.URL, "test-key", "gemini-2.5-flash", m)

	confirmed := []pelada.Player{{Name: "Lucas"}, {Name: "Pedro"}}
	msg := client.ReminderMessage(context.Background(), testDetails(), confirmed)
	assert.Equal(t, "Bora!", msg)
	assert.Contains(t, gotBody, "Lucas, Pedro")
}

func TestFallbackOnEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	m := metrics.NewMock()
	client := NewClient(server.URL, "test-key", "gemini-2.5-flash", m)

	msg := client.ReminderMessage(context.Background(), testDetails(), nil)
	assert.Equal(t, "Galera, jogo amanhã! Bora confirmar!", msg)
}
