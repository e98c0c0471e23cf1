package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// VisionConfig carries everything the vision client needs; nothing is read
// from the environment at call time.
type VisionConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	BaseURL     string
}

// VisionConfigFromEnv builds the config once at startup.
func VisionConfigFromEnv() VisionConfig {
	cfg := VisionConfig{
		APIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:       "gpt-4o",
		MaxTokens:   4000,
		Temperature: 0.2,
		Timeout:     60 * time.Second,
		BaseURL:     "https://api.openai.com/v1",
	}
	if m := os.Getenv("VISION_MODEL"); m != "" {
		cfg.Model = m
	}
	if v := os.Getenv("GPT_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("GPT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("GPT_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}
	return cfg
}

// VisionService calls the vision-language model that estimates nutrients
// from a food photo. One call, one timeout, no retries: on any failure the
// analysis layer substitutes its fallback payload.
type VisionService struct {
	cfg    VisionConfig
	client *http.Client
	logger *zap.Logger
}

func NewVisionService(cfg VisionConfig, logger *zap.Logger) *VisionService {
	return &VisionService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// The model is instructed to answer in the Spanish JSON shape the mobile
// app consumes (alimentos_detectados / totales / recomendaciones /
// compatibilidad_renal).
const visionPrompt = `Analiza esta imagen de alimentos e identifica los siguientes aspectos:
1. Que alimentos estan presentes en la imagen.
2. Estima los valores nutricionales aproximados del plato o alimento principal:
   calorias, sodio (mg), potasio (mg), fosforo (mg), proteinas (g).
3. Indica si esta comida es adecuada para personas con enfermedad renal cronica,
   teniendo en cuenta la porcion y cuantas veces por semana podria comerse.

Formatea tu respuesta como un JSON con los siguientes campos:
{
  "alimentos_detectados": [lista de alimentos],
  "totales": {
    "energia": valor_calorias,
    "sodio": valor_sodio,
    "potasio": valor_potasio,
    "fosforo": valor_fosforo,
    "proteinas": valor_proteinas
  },
  "recomendaciones": "texto con recomendaciones para pacientes renales",
  "compatibilidad_renal": booleano
}`

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

var jsonFence = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// AnalyzeFoodImage sends a base64 JPEG to the vision model and returns the
// parsed payload with the original response text attached under
// "texto_original".
func (v *VisionService) AnalyzeFoodImage(ctx context.Context, imageBase64 string) (map[string]any, error) {
	if v.cfg.APIKey == "" {
		return nil, fmt.Errorf("vision API key not configured")
	}

	reqBody := chatRequest{
		Model: v.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "Eres un nutricionista especializado en enfermedad renal."},
			{Role: "user", Content: []map[string]any{
				{"type": "text", "text": visionPrompt},
				{"type": "image_url", "image_url": map[string]string{
					"url": "data:image/jpeg;base64," + imageBase64,
				}},
			}},
		},
		MaxTokens:   v.cfg.MaxTokens,
		Temperature: v.cfg.Temperature,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.cfg.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call vision API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API error %d: %s", resp.StatusCode, string(body))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("vision API returned no choices")
	}
	content := cr.Choices[0].Message.Content

	payload, err := extractJSON(content)
	if err != nil {
		return nil, err
	}
	payload["texto_original"] = content
	return payload, nil
}

// extractJSON parses the model's answer, which is either bare JSON or JSON
// inside a markdown fence.
func extractJSON(content string) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err == nil {
		return payload, nil
	}
	if m := jsonFence.FindStringSubmatch(content); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &payload); err == nil {
			return payload, nil
		}
	}
	return nil, fmt.Errorf("no valid JSON in vision response")
}
