package exception

import "fmt"

type FormatNotFoundError struct {
	*AppError
	Name string
}

func NewFormatNotFoundError(name string) *FormatNotFoundError {
	return &FormatNotFoundError{
		AppError: &AppError{
			Code:    "FORMAT_NOT_FOUND",
			Message: fmt.Sprintf("format with name '%s' is not registered", name),
		},
		Name: name,
	}
}

type InvalidDescriptorError struct {
	*AppError
	Name string
}

func NewInvalidDescriptorError(name string, message string, cause error) *InvalidDescriptorError {
	return &InvalidDescriptorError{
		AppError: &AppError{
			Code:    "INVALID_DESCRIPTOR",
			Message: fmt.Sprintf("format '%s': %s", name, message),
			Cause:   cause,
		},
		Name: name,
	}
}

type ConfigError struct {
	*AppError
}

func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		AppError: &AppError{
			Code:    "CONFIG_ERROR",
			Message: message,
			Cause:   cause,
		},
	}
}

type ImportError struct {
	*AppError
}

func NewImportError(message string, cause error) *ImportError {
	return &ImportError{
		AppError: &AppError{
			Code:    "IMPORT_ERROR",
			Message: message,
			Cause:   cause,
		},
	}
}
