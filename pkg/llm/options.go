package llm

// ChatOptions holds per-request chat parameters
type ChatOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}

// Option is a functional option for chat requests
type Option func(*ChatOptions)

// DefaultOptions returns the default chat options. Providers fill in their
// own default model.
func DefaultOptions() *ChatOptions {
	return &ChatOptions{
		Temperature: 0.7,
	}
}

// WithModel overrides the model for the request
func WithModel(model string) Option {
	return func(o *ChatOptions) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float32) Option {
	return func(o *ChatOptions) {
		o.Temperature = t
	}
}

// WithMaxTokens caps the completion length
func WithMaxTokens(n int) Option {
	return func(o *ChatOptions) {
		o.MaxTokens = n
	}
}

// WithJSONMode requests output in JSON object format
func WithJSONMode() Option {
	return func(o *ChatOptions) {
		o.JSONMode = true
	}
}
