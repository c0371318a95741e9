package container

import (
	"errors"
	"net/http"

	"go.uber.org/zap/zapcore"
)

// PackageName identifies errors raised by this package.
const PackageName = "github.com/km-arc/go-servicemanager"

// ErrDependencyNotFound is matched (via errors.Is) by every
// *DependencyNotFoundError.
var ErrDependencyNotFound = errors.New("dependency-not-found")

// ErrUnexpectedType is returned by Resolve when the service does not have the
// requested Go type.
var ErrUnexpectedType = errors.New("resolved service has an unexpected type")

// DependencyNotFoundError is returned when a lookup by name finds no binding.
//
// The missing name is logs-only data: it is not part of Error(), but it is
// available through LogsOnly() and is emitted when the error is logged with
// zap.Object.
type DependencyNotFoundError struct {
	ServiceName string
}

// NewDependencyNotFound builds the error for a missing service.
func NewDependencyNotFound(name string) *DependencyNotFoundError {
	return &DependencyNotFoundError{ServiceName: name}
}

func (e *DependencyNotFoundError) Error() string {
	return PackageName + "/" + e.ErrorName() + ": " + e.Detail()
}

// Is reports whether target is ErrDependencyNotFound.
func (e *DependencyNotFoundError) Is(target error) bool {
	return target == ErrDependencyNotFound
}

// ErrorName is the machine-readable name of the error.
func (e *DependencyNotFoundError) ErrorName() string { return "dependency-not-found" }

// Detail is the human-readable description.
func (e *DependencyNotFoundError) Detail() string {
	return "requested service not found in the DI container"
}

// Status is the HTTP status an outer surface should report.
func (e *DependencyNotFoundError) Status() int { return http.StatusInternalServerError }

// LogsOnly returns the context that belongs in logs but not in responses.
func (e *DependencyNotFoundError) LogsOnly() map[string]string {
	return map[string]string{"serviceName": e.ServiceName}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e *DependencyNotFoundError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("packageName", PackageName)
	enc.AddString("errorName", e.ErrorName())
	enc.AddString("detail", e.Detail())
	enc.AddInt("status", e.Status())
	enc.AddString("serviceName", e.ServiceName)
	return nil
}

// MissingService extracts the service name from a dependency-not-found error
// anywhere in err's chain.
func MissingService(err error) (string, bool) {
	var nf *DependencyNotFoundError
	if errors.As(err, &nf) {
		return nf.ServiceName, true
	}
	return "", false
}
