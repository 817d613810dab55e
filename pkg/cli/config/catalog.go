package config

import (
	"time"

	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/infra/ckan"
	"github.com/urfave/cli/v3"
)

// Catalog holds dataset catalog API configuration
type Catalog struct {
	BaseURL string
	Timeout time.Duration
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog-url",
			Usage:       "Base URL of the catalog action API",
			Value:       ckan.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("GLEANER_CATALOG_URL"),
		},
		&cli.DurationFlag{
			Name:        "catalog-timeout",
			Usage:       "HTTP timeout for catalog requests",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("GLEANER_CATALOG_TIMEOUT"),
		},
	}
}

// Configure builds a catalog client from the configuration
func (c *Catalog) Configure() interfaces.CatalogClient {
	return ckan.NewClient(c.BaseURL, ckan.WithTimeout(c.Timeout))
}
