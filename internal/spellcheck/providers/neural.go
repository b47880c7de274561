package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mrlokans/scribe/internal/spellcheck"
)

// NeuralProvider delegates checking to a remote context-aware model over
// HTTP. The service returns a corrected rendition of the whole text and
// errors are recovered by aligning it word by word with the original.
type NeuralProvider struct {
	httpClient  *http.Client
	endpoint    string
	initialized bool
}

func NewNeuralProvider(endpoint string) *NeuralProvider {
	return &NeuralProvider{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

func (p *NeuralProvider) Name() string { return "neural" }

// Initialize probes the service health endpoint. An unset or unreachable
// endpoint leaves the provider unavailable without failing startup.
func (p *NeuralProvider) Initialize(ctx context.Context) bool {
	if p.endpoint == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "Scribe/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("neural checker unreachable at %s: %v", p.endpoint, err)
		return false
	}
	defer resp.Body.Close()

	p.initialized = resp.StatusCode == http.StatusOK
	return p.initialized
}

func (p *NeuralProvider) Available() bool { return p.initialized }

func (p *NeuralProvider) Languages() []string { return []string{"en"} }

func (p *NeuralProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

type neuralRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type neuralResponse struct {
	CorrectedText string `json:"corrected_text"`
}

func (p *NeuralProvider) Check(ctx context.Context, text, language string) spellcheck.Result {
	result := spellcheck.EmptyResult(text, language, p.Name())
	if !p.initialized || strings.TrimSpace(text) == "" {
		return result
	}

	corrected, err := p.correct(ctx, text, language)
	if err != nil {
		log.Printf("neural check failed, returning no errors: %v", err)
		return result
	}

	result.CorrectedText = corrected
	result.Errors = alignErrors(text, corrected)
	return result
}

func (p *NeuralProvider) correct(ctx context.Context, text, language string) (string, error) {
	payload, err := json.Marshal(neuralRequest{Text: text, Language: language})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/correct", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Scribe/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch correction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded neuralResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return decoded.CorrectedText, nil
}

// alignErrors diffs the corrected text against the original token by
// token. When the token counts diverge the alignment is ambiguous and no
// errors are reported.
func alignErrors(original, corrected string) []spellcheck.Error {
	origTokens := spellcheck.Tokenize(original)
	corrTokens := spellcheck.Tokenize(corrected)
	if len(origTokens) != len(corrTokens) {
		return nil
	}

	var errs []spellcheck.Error
	for i, token := range origTokens {
		replacement := corrTokens[i].Word
		if strings.EqualFold(token.Word, replacement) {
			continue
		}
		errs = append(errs, spellcheck.Error{
			Word:        token.Word,
			StartPos:    token.StartPos,
			EndPos:      token.EndPos,
			Suggestions: []string{matchCase(token.Word, strings.ToLower(replacement))},
			Confidence:  "high",
		})
	}
	return errs
}
