package config

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator used across the config
// package, built once on first use.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// GetValidator returns a configured validator instance for use outside the
// config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// Validate applies struct-tag validation to Settings. When the sandbox
// timeout, output budget and workspace root are all unset, it first replaces
// the whole sandbox section with DefaultSandboxSettings; a partly set
// section is left as it is.
func Validate(s *Settings) error {
	if s.Sandbox.TimeoutSeconds == 0 && s.Sandbox.OutputBudget == 0 && s.Sandbox.WorkspaceRoot == "" {
		s.Sandbox = DefaultSandboxSettings()
	}
	return validatorInstance().Struct(s)
}
