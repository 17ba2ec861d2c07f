package log

import "io"

// Config is a declarative logger configuration, typically decoded from the
// host's config file.
type Config struct {
	// Level is the minimum level name ("debug", "info", ...). Empty means info.
	Level string `json:"level"`
	// Format selects "text" or "json" formatting. Empty means json.
	Format string `json:"format"`
	// RedactKeys lists field keys whose values are replaced with [REDACTED].
	RedactKeys []string `json:"redactKeys"`
	// SampleInitial and SampleThereafter enable per-message sampling when
	// SampleThereafter > 0: the first SampleInitial occurrences pass, then
	// one in every SampleThereafter.
	SampleInitial    int `json:"sampleInitial"`
	SampleThereafter int `json:"sampleThereafter"`
}

// ApplyConfig builds a Logger from cfg. When w is nil, output goes to the
// console.
func ApplyConfig(cfg Config, w io.Writer) (Logger, error) {
	level := InfoLevel
	if cfg.Level != "" {
		parsed, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var formatter Formatter = &JSONFormatter{}
	if cfg.Format == "text" {
		formatter = &TextFormatter{}
	}

	opts := []LoggerOption{
		WithLevel(level),
		WithFormatter(formatter),
		WithRedaction(cfg.RedactKeys...),
		WithSampling(cfg.SampleInitial, cfg.SampleThereafter),
	}
	if w != nil {
		opts = append(opts, WithOutput(NewWriterOutput(w)))
	}
	return NewLogger(opts...), nil
}
