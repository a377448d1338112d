package otel

import (
	"go.opentelemetry.io/otel/attribute"
)

// GenAI Semantic Conventions for LLM observability
// Based on OpenTelemetry GenAI SIG conventions

const (
	GenAISystem       = attribute.Key("gen_ai.system")        // e.g., "ollama", "openai"
	GenAIRequestModel = attribute.Key("gen_ai.request.model") // e.g., "llama3.2:latest"

	GenAIUsageInputTokens  = attribute.Key("gen_ai.usage.input_tokens")
	GenAIUsageOutputTokens = attribute.Key("gen_ai.usage.output_tokens")

	GenAIResponseFinishReason = attribute.Key("gen_ai.response.finish_reason")
)

// LLMRequestAttributes creates standard attributes for LLM requests
func LLMRequestAttributes(system, model string) []attribute.KeyValue {
	return []attribute.KeyValue{
		GenAISystem.String(system),
		GenAIRequestModel.String(model),
	}
}
