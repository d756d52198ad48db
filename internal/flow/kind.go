package flow

import (
	"fmt"
	"strings"
)

// Kind selects a navigation policy.
type Kind string

const (
	KindStack    Kind = "stack"
	KindCarousel Kind = "carousel"
)

// Kinds lists every supported policy.
func Kinds() []Kind {
	return []Kind{KindStack, KindCarousel}
}

// ParseKind resolves a policy name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindStack:
		return KindStack, nil
	case KindCarousel:
		return KindCarousel, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) String() string {
	return string(k)
}

// Set implements pflag.Value.
func (k *Kind) Set(s string) error {
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Type implements pflag.Value.
func (k *Kind) Type() string {
	return "flow"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	return k.Set(string(text))
}
