package config

import "github.com/urfave/cli/v3"

// Auth holds JWT authentication configuration for the HTTP server
type Auth struct {
	JWKSURL  string
	Issuer   string
	Audience string
}

// Flags returns CLI flags for authentication configuration
func (c *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-jwks-url",
			Usage:       "JWKS URL for verifying request tokens (authentication disabled when empty)",
			Destination: &c.JWKSURL,
			Sources:     cli.EnvVars("GLEANER_AUTH_JWKS_URL"),
		},
		&cli.StringFlag{
			Name:        "auth-issuer",
			Usage:       "Required issuer claim of request tokens",
			Destination: &c.Issuer,
			Sources:     cli.EnvVars("GLEANER_AUTH_ISSUER"),
		},
		&cli.StringFlag{
			Name:        "auth-audience",
			Usage:       "Required audience claim of request tokens",
			Destination: &c.Audience,
			Sources:     cli.EnvVars("GLEANER_AUTH_AUDIENCE"),
		},
	}
}

// Enabled reports whether token verification is configured
func (c *Auth) Enabled() bool {
	return c.JWKSURL != ""
}
