package config

import (
	"fmt"
	"strings"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

// ValidateStartup checks that the agent will be able to authenticate:
// either issued client credentials are present, or a farmer name is set so
// the one-time registration flow can obtain them.
func (c *Config) ValidateStartup() error {
	if c.HasCredentials() {
		return nil
	}
	if c.FarmerName != "" {
		return nil
	}

	var missing []string
	if c.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	return fmt.Errorf("%w: %s - set %s, or set %s to register a new farmer",
		domain.ErrFatal, domain.ErrMsgNoCredentials, strings.Join(missing, " and "), EnvFarmerName)
}

// ValidateStartupWithWarnings runs ValidateStartup and additionally returns
// warnings for suspicious but non-fatal configuration.
func (c *Config) ValidateStartupWithWarnings() ([]string, error) {
	if err := c.ValidateStartup(); err != nil {
		return nil, err
	}

	var warnings []string

	if c.ClientID != "" && c.ClientSecret == "" {
		warnings = append(warnings, EnvClientID+" is set but "+EnvClientSecret+" is empty - registration will run and overwrite it")
	}
	if c.TokenSafetyMargin >= c.TokenRefreshInterval {
		warnings = append(warnings, EnvTokenSafetyMargin+" is not shorter than "+EnvTokenRefreshInterval+" - every call will trigger a synchronous refresh")
	}
	if c.StrategyInterval == c.MarketRefreshInterval {
		warnings = append(warnings, EnvStrategyInterval+" equals "+EnvMarketRefreshInterval+" - decision cycles will race the market refresh")
	}

	return warnings, nil
}
