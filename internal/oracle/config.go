package oracle

// Config tunes advisor generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	// HistoryLimit caps how many prior turns are sent with each request.
	HistoryLimit int
}

// DefaultConfig returns the advisor defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    400,
		Temperature:  0.7,
		HistoryLimit: 10,
	}
}
