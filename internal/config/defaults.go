package config

// Histogram defaults.
const (
	DefaultHistogramNumBuckets  = 0 // Zero selects the count from the data.
	DefaultHistogramDisplaySize = 80
	DefaultHistogramPassthrough = PassthroughAuto
)

// Sampler defaults.
const (
	DefaultSamplerSeed uint64 = 0
)

// Summary defaults.
const (
	DefaultSummaryFormat = FormatText
)

// Logging defaults.
const (
	DefaultLoggingLevel = "warn"
	DefaultLoggingJSON  = false
)

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Histogram: HistogramConfig{
			Passthrough: DefaultHistogramPassthrough,
			NumBuckets:  DefaultHistogramNumBuckets,
			DisplaySize: DefaultHistogramDisplaySize,
		},
		Sampler: SamplerConfig{Seed: DefaultSamplerSeed},
		Summary: SummaryConfig{Format: DefaultSummaryFormat},
		Logging: LoggingConfig{Level: DefaultLoggingLevel, JSON: DefaultLoggingJSON},
	}
}
