package porridge

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrContract is the common kind of every contract violation: a value was
	// used in a role whose structural contract it does not satisfy.
	ErrContract = errors.New("contract violation")

	// ErrInvalidSerializer indicates a value that is not a usable Serializer.
	ErrInvalidSerializer = errors.New("invalid serializer")

	// ErrInvalidExtractor indicates a value that is not a usable Extractor.
	ErrInvalidExtractor = errors.New("invalid extractor")

	// ErrInvalidFieldPolicy indicates a missing or unusable field policy.
	ErrInvalidFieldPolicy = errors.New("invalid field policy")

	// ErrInvalidCodec indicates a processor was given no codec.
	ErrInvalidCodec = errors.New("invalid codec")

	// ErrInvalidFieldName indicates a field name that cannot be used as a map key.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrInvalidInput indicates a Field received an input that is not a map.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRootKey indicates no root key could be inferred for an object.
	ErrRootKey = errors.New("undeterminable root key")

	// ErrRecursiveType indicates Scan met a type that contains itself.
	ErrRecursiveType = errors.New("recursive type")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrMissingEncryptor indicates a required encryptor was not registered.
	ErrMissingEncryptor = errors.New("missing encryptor")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrEncrypt indicates encryption of a field failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrHash indicates hashing of a field failed.
	ErrHash = errors.New("hash failed")

	// ErrMask indicates masking of a field failed.
	ErrMask = errors.New("mask failed")

	// ErrRedact indicates redaction of a field failed.
	ErrRedact = errors.New("redact failed")
)

// ContractError reports a value used in a role it cannot fill.
// Err is one of ErrInvalidSerializer, ErrInvalidExtractor,
// ErrInvalidFieldPolicy, ErrInvalidFieldName, ErrInvalidInput or
// ErrInvalidCodec.
type ContractError struct {
	Err   error  // Underlying sentinel error
	Param string // Parameter or option key that failed the check
	Got   string // Dynamic type of the offending value
}

func (e *ContractError) Error() string {
	switch {
	case e.Param != "" && e.Got != "":
		return fmt.Sprintf("%s: %s (got %s)", e.Err.Error(), e.Param, e.Got)
	case e.Param != "":
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Param)
	default:
		return e.Err.Error()
	}
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// Is reports every ContractError as an ErrContract.
func (e *ContractError) Is(target error) bool {
	return target == ErrContract
}

// ConfigError represents a Scan or processor configuration error.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrMissingEncryptor, etc.)
	Field     string // Field name that triggered the error
	Algorithm string // Algorithm or type that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error while transforming an extracted value.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrEncrypt, ErrHash, etc.)
	Operation string // Operation that failed (encrypt, hash, mask, redact)
	Cause     error  // Original error from the underlying operation
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
	}
	return e.Operation
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newContractError(sentinel error, param string, got any) error {
	e := &ContractError{Err: sentinel, Param: param}
	if got != nil {
		e.Got = fmt.Sprintf("%T", got)
	}
	return errors.WithStack(e)
}

func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

func newTransformError(sentinel error, operation string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Operation: operation,
		Cause:     cause,
	}
}

func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
