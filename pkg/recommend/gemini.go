package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kerbaras/anitrack/pkg/data"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var (
	ErrNoTitles      = errors.New("add some anime to your list first to get a recommendation")
	ErrNotConfigured = errors.New("gemini API is not configured, set the API_KEY environment variable")
)

// Recommender suggests one new title based on the titles already tracked.
type Recommender interface {
	Recommend(ctx context.Context, titles []string) (*data.Recommendation, error)
}

// generator is the slice of the Gemini API the recommender needs.
type generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Gemini is the Recommender backed by Google's Gemini API.
type Gemini struct {
	gen   generator
	model string
}

// NewGemini creates a Gemini recommender. An empty apiKey yields a
// recommender that fails every call with ErrNotConfigured, so the rest of
// the app keeps working without one.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}
	if apiKey == "" {
		return &Gemini{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{gen: &genaiGenerator{client: client}, model: model}, nil
}

func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Recommend(ctx context.Context, titles []string) (*data.Recommendation, error) {
	if len(titles) == 0 {
		return nil, ErrNoTitles
	}
	if g.gen == nil {
		return nil, ErrNotConfigured
	}

	raw, err := g.gen.Generate(ctx, g.model, BuildPrompt(titles))
	if err != nil {
		return nil, fmt.Errorf("failed to communicate with Gemini API: %w", err)
	}

	rec, err := ParseRecommendation(raw, titles)
	if err != nil {
		return nil, fmt.Errorf("failed to communicate with Gemini API: %w", err)
	}
	return rec, nil
}

func BuildPrompt(titles []string) string {
	return fmt.Sprintf(`Based on this list of anime: %s.
Please recommend one new anime that I might like.
A crucial requirement is that the recommended anime must have a high rating, specifically above 8 out of 10 on popular anime rating websites (like MyAnimeList).
Do not recommend any anime from the list I provided.
Provide your response as a single, clean JSON object with two keys: "title" (the anime's name) and "reason" (a short, one-sentence explanation for the recommendation, and you can mention its high rating).
Example format: {"title": "Steins;Gate", "reason": "Because you like shows with intricate plots, you might enjoy this highly-rated sci-fi thriller."}`,
		strings.Join(titles, ", "))
}

// ParseRecommendation decodes a model response into a Recommendation. It
// tolerates code fences and prose around the JSON object, and rejects
// responses missing a field or repeating one of titles.
func ParseRecommendation(raw string, titles []string) (*data.Recommendation, error) {
	payload := sanitizeJSONPayload(raw)
	if payload == "" {
		return nil, errors.New("empty response from Gemini")
	}

	var rec data.Recommendation
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("invalid JSON from Gemini: %w", err)
	}
	rec.Title = strings.TrimSpace(rec.Title)
	rec.Reason = strings.TrimSpace(rec.Reason)
	if rec.Title == "" || rec.Reason == "" {
		return nil, errors.New("invalid JSON structure from Gemini")
	}

	for _, t := range titles {
		if strings.EqualFold(strings.TrimSpace(t), rec.Title) {
			return nil, fmt.Errorf("gemini recommended %q which is already in your list", rec.Title)
		}
	}
	return &rec, nil
}

func sanitizeJSONPayload(content string) string {
	trimmed := strings.TrimSpace(stripCodeFence(content))
	if trimmed == "" || trimmed[0] == '{' || trimmed[0] == '[' {
		return trimmed
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t")
	// drop the language tag, if any
	if nl := strings.IndexAny(body, "\r\n"); nl >= 0 && !strings.ContainsAny(body[:nl], "{[") {
		body = body[nl:]
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}
