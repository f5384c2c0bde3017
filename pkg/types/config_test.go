package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()

	with := func(mut func(*Config)) Config {
		c := DefaultConfig()
		mut(&c)
		return c
	}

	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "default config is valid",
			config:  valid,
			wantErr: nil,
		},
		{
			name:    "empty engine returns ErrEngineEmpty",
			config:  with(func(c *Config) { c.Engine = "" }),
			wantErr: ErrEngineEmpty,
		},
		{
			name:    "unknown engine returns ErrEngineUnknown",
			config:  with(func(c *Config) { c.Engine = "h2" }),
			wantErr: ErrEngineUnknown,
		},
		{
			name:    "empty db name returns ErrDBNameEmpty",
			config:  with(func(c *Config) { c.DBName = "" }),
			wantErr: ErrDBNameEmpty,
		},
		{
			name:    "zero expected count returns ErrExpectedCountInvalid",
			config:  with(func(c *Config) { c.ExpectedCount = 0 }),
			wantErr: ErrExpectedCountInvalid,
		},
		{
			name:    "empty order returns ErrOrderEmpty",
			config:  with(func(c *Config) { c.Order = nil }),
			wantErr: ErrOrderEmpty,
		},
		{
			name:    "bad variant in order returns ErrVariantUnknown",
			config:  with(func(c *Config) { c.Order = []Variant{"cached"} }),
			wantErr: ErrVariantUnknown,
		},
		{
			name:    "single variant order is valid",
			config:  with(func(c *Config) { c.Order = []Variant{VariantLiteral} }),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigPragmasAreCopied(t *testing.T) {
	c := DefaultConfig()
	c.Pragmas[0] = "changed"
	if DefaultPragmas[0] == "changed" {
		t.Fatal("DefaultConfig shares the DefaultPragmas backing array")
	}
}

func TestRegisterEngine(t *testing.T) {
	if KnownEngine("test-engine") {
		t.Fatal("test-engine registered before RegisterEngine")
	}
	RegisterEngine("test-engine")
	t.Cleanup(func() { delete(knownEngines, "test-engine") })

	c := DefaultConfig()
	c.Engine = "test-engine"
	if err := c.Validate(); err != nil {
		t.Fatalf("expected registered engine to validate, got %v", err)
	}
}
