package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/pelada-pro/internal/metrics"
	"github.com/mauv0809/pelada-pro/internal/notifier"
	"github.com/mauv0809/pelada-pro/internal/pelada"
)

// Client generates match announcements through the Gemini REST API. Any
// transport or parse failure degrades to a static Portuguese template, so
// callers always get usable text.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	metrics    metrics.Metrics
}

// NewClient creates a new Gemini-backed notifier.
func NewClient(baseURL, apiKey, model string, m metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		metrics:    m,
	}
}

var _ notifier.Notifier = (*Client)(nil)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) InviteMessage(ctx context.Context, details pelada.MatchDetails) string {
	confirmLink := confirmLink(details.OrganizerPhone, "Confirmo minha presença na pelada! ⚽")
	if confirmLink == "" {
		confirmLink = "[Link Indisponível - Adicione o telefone do organizador]"
	}

	prompt := fmt.Sprintf(`Crie uma mensagem curta, divertida e empolgante para enviar no grupo de WhatsApp da pelada.

Detalhes:
- Data: %s
- Hora: %s
- Local: %s

Instrução Obrigatória:
Você DEVE incluir este link exato no final da mensagem para confirmação: %s

A mensagem deve chamar a galera para clicar no link. Use emojis de futebol.`,
		details.Date, details.Time, details.Location, confirmLink)

	fallback := fmt.Sprintf("Bora pra pelada! Confirme sua presença: %s", confirmLink)
	return c.generate(ctx, prompt, fallback)
}

func (c *Client) ReminderMessage(ctx context.Context, details pelada.MatchDetails, confirmed []pelada.Player) string {
	names := make([]string, len(confirmed))
	for i, p := range confirmed {
		names[i] = p.Name
	}

	confirmLink := confirmLink(details.OrganizerPhone, "Vou jogar! Foi mal a demora 🏃‍♂️")
	linkLine := ""
	if confirmLink != "" {
		linkLine = fmt.Sprintf("Inclua este link para quem for confirmar agora: %s", confirmLink)
	}

	prompt := fmt.Sprintf(`Crie uma mensagem curta e urgente (mas divertida) para lembrar o pessoal do jogo de amanhã.
Detalhes:
- Data: %s
- Hora: %s
- Local: %s

Jogadores já confirmados: %s

O objetivo é fazer quem não confirmou se mexer. Use emojis.
%s`,
		details.Date, details.Time, details.Location, strings.Join(names, ", "), linkLine)

	return c.generate(ctx, prompt, "Galera, jogo amanhã! Bora confirmar!")
}

// confirmLink builds a wa.me link from the organizer phone's digits. Returns
// empty when no digits are available.
func confirmLink(organizerPhone, message string) string {
	var digits strings.Builder
	for _, r := range organizerPhone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits.String(), url.QueryEscape(message))
}

// generate calls the API and falls back to the given template on any failure.
func (c *Client) generate(ctx context.Context, prompt, fallback string) string {
	c.metrics.IncMessagesGenerated()

	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		log.Warn("Gemini generation failed, using fallback message", "error", err)
		c.metrics.IncMessageFallbacks()
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		c.metrics.IncMessageFallbacks()
		return fallback
	}
	return text
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: 300,
			Temperature:     0.8,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
