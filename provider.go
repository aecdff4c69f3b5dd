package careagent

import "fmt"

// Provider identifies a chat backend.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// ParseProvider validates a provider name.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case ProviderOllama, ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
		return p, nil
	default:
		return "", fmt.Errorf("unknown provider %q", s)
	}
}
