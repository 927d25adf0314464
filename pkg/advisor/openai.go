package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dpa",
		Subsystem: "advisor",
		Name:      "generation_duration_seconds",
		Help:      "Duration of recommendation generation requests",
	}, []string{"model"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dpa",
		Subsystem: "advisor",
		Name:      "generation_failures_total",
		Help:      "Number of failed recommendation generation requests",
	}, []string{"model"})
)

// resultSchema constrains what the model is allowed to return. Anything that
// does not validate is treated as a failed generation.
const resultSchema = `{
	"type": "object",
	"required": ["priority", "recommended_actions", "explanation"],
	"properties": {
		"priority": {"enum": ["LOW", "MEDIUM", "HIGH"]},
		"recommended_actions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["type", "owner", "rationale"],
				"properties": {
					"type": {"type": "string", "minLength": 1},
					"owner": {"enum": ["advisor", "student", "admin"]},
					"rationale": {"type": "string", "minLength": 1}
				}
			}
		},
		"explanation": {"type": "string", "minLength": 1}
	}
}`

// OpenAIConfig defines configuration options for the OpenAI generator.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGenerator implements Generator against the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	schema *jsonschema.Schema
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 800
	}

	schema, err := jsonschema.CompileString("recommendation.json", resultSchema)
	if err != nil {
		return nil, fmt.Errorf("compile recommendation schema: %w", err)
	}

	tracer := otel.Tracer("github.com/thilanga24/dropout-prevention-api/pkg/advisor")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		schema: schema,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Generate requests a recommendation from OpenAI and parses the response.
func (g *OpenAIGenerator) Generate(parent context.Context, input Input) (Result, error) {
	ctx, span := g.tracer.Start(parent, "advisor.generate", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
		attribute.String("risk_level", input.RiskLevel),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: generatorSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildUserPrompt(input),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	generationDuration.WithLabelValues(g.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		generationFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("%w: no choices returned", ErrUnavailable)
		generationFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	result, err := g.parseResult(content)
	if err != nil {
		generationFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	result.Model = g.cfg.Model
	return result, nil
}

func (g *OpenAIGenerator) parseResult(content string) (Result, error) {
	var decoded interface{}
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return Result{}, fmt.Errorf("%w: parse recommendation json: %v", ErrUnavailable, err)
	}

	if err := g.schema.Validate(decoded); err != nil {
		return Result{}, fmt.Errorf("%w: recommendation failed schema validation: %v", ErrUnavailable, err)
	}

	var result Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return Result{}, fmt.Errorf("%w: decode recommendation: %v", ErrUnavailable, err)
	}

	return result, nil
}

func generatorSystemPrompt() string {
	return `You are an advisory decision-support assistant for a university dropout prevention system.

Hard constraints:
- Do NOT predict dropout.
- Do NOT label a student (no 'dropout-prone', no permanent labels).
- Do NOT provide medical or mental health diagnoses.
- Do NOT recommend punitive actions.
- Recommendations must be supportive, ethical, and explainable.
- Output must be JSON ONLY and match the schema.

You will be given structured signals (GPA trend, attendance, LMS activity, failed modules, missed assessments, course load), a numeric rule-based risk score, and the triggered reasons.
Your job: recommend non-punitive interventions and a priority level for a human advisor.

JSON schema:
{
  "priority": "LOW"|"MEDIUM"|"HIGH",
  "recommended_actions": [
     {"type": string, "owner": "advisor"|"student"|"admin", "rationale": string}
  ],
  "explanation": string
}`
}

func buildUserPrompt(input Input) string {
	context := map[string]interface{}{
		"student": map[string]interface{}{
			"student_code": input.StudentCode,
			"full_name":    input.FullName,
			"program":      input.Program,
			"year_level":   input.YearLevel,
		},
		"signals": input.Signals,
		"risk": map[string]interface{}{
			"score":   input.RiskScore,
			"level":   input.RiskLevel,
			"reasons": input.RiskReasons,
		},
		"constraints": map[string]interface{}{
			"no_punishment":         true,
			"no_dropout_prediction": true,
			"no_diagnosis":          true,
			"human_in_the_loop":     true,
		},
	}

	payload, _ := json.Marshal(context)

	builder := strings.Builder{}
	builder.WriteString("INPUT_JSON:\n")
	builder.Write(payload)
	builder.WriteString("\n\nReturn ONLY valid JSON (no markdown, no backticks).")
	return builder.String()
}
