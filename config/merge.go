package config

import (
	"github.com/sirupsen/logrus"
)

// Resolve merges command-line settings over the file. Report fields are the
// union of both; a filter given on the command line replaces the file's.
// Unknown field names in the file are skipped with a warning.
func Resolve(file *File, flags Config, logger *logrus.Entry) Config {
	cfg := flags
	if file == nil {
		return cfg
	}

	for _, name := range file.Report {
		f, ok := ParseField(name)
		if !ok {
			logger.WithField("field", name).Warn("Ignoring unknown report field in configuration")
			continue
		}
		cfg.Fields = cfg.Fields.With(f)
	}

	if cfg.Output == "" {
		cfg.Output = file.Output
	}
	if cfg.Seat == "" {
		cfg.Seat = file.Seat
	}

	return cfg
}
