package valueobjects

import (
	"fmt"
	"strings"
)

// Provider identifies the upstream subscription platform a record was synced from.
type Provider string

const (
	ProviderLoop     Provider = "loop"
	ProviderCustom   Provider = "custom"
	ProviderRecharge Provider = "recharge"
	ProviderBold     Provider = "bold"
)

var ValidProviders = map[Provider]bool{
	ProviderLoop:     true,
	ProviderCustom:   true,
	ProviderRecharge: true,
	ProviderBold:     true,
}

func ParseProvider(value string) (Provider, error) {
	normalized := Provider(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", fmt.Errorf("provider cannot be empty")
	}
	if !ValidProviders[normalized] {
		return "", fmt.Errorf("invalid provider: %s", value)
	}
	return normalized, nil
}

func (p Provider) String() string {
	return string(p)
}

func (p Provider) IsValid() bool {
	return ValidProviders[p]
}
