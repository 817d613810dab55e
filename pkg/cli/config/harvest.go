package config

import (
	"github.com/m-mizutani/gleaner/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Harvest holds harvest behavior configuration
type Harvest struct {
	Concurrency int64
	SampleLimit int64
	OutputName  string
}

// Flags returns CLI flags for harvest configuration
func (c *Harvest) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Number of concurrent dataset detail fetches",
			Value:       usecase.DefaultConcurrency,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("GLEANER_CONCURRENCY_LIMIT"),
		},
		&cli.IntFlag{
			Name:        "sample-limit",
			Usage:       "Number of datasets to fetch in test mode",
			Value:       usecase.DefaultSampleLimit,
			Destination: &c.SampleLimit,
			Sources:     cli.EnvVars("GLEANER_SAMPLE_LIMIT"),
		},
		&cli.StringFlag{
			Name:        "output-name",
			Usage:       "Object name of the published CSV",
			Value:       usecase.DefaultObjectName,
			Destination: &c.OutputName,
			Sources:     cli.EnvVars("GLEANER_OUTPUT_NAME"),
		},
	}
}

// Options converts the configuration into harvest use case options
func (c *Harvest) Options() []usecase.Option {
	return []usecase.Option{
		usecase.WithConcurrency(int(c.Concurrency)),
		usecase.WithSampleLimit(int(c.SampleLimit)),
		usecase.WithObjectName(c.OutputName),
	}
}
