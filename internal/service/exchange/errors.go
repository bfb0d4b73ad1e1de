package exchange

import "errors"

// 错误分类, 使用 errors.Is 判断
var (
	// ErrConfig credentials missing or rejected by the exchange.
	ErrConfig = errors.New("config error")
	// ErrTransport the request never produced an exchange answer (network, decode).
	ErrTransport = errors.New("transport error")
	// ErrNotFound unknown order or symbol.
	ErrNotFound = errors.New("not found")
	// ErrRejected the exchange answered with an error for the request.
	ErrRejected = errors.New("rejected")
	// ErrInvalidInput the request failed validation before any call was made.
	ErrInvalidInput = errors.New("invalid input")
)

var errorKinds = []error{ErrConfig, ErrTransport, ErrNotFound, ErrRejected, ErrInvalidInput}

// Error carries the kind of a failure next to its cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func NewError(op string, kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	if e.Op == "" {
		return e.Kind.Error() + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// KindOf 返回错误所属分类, 未分类时返回 nil
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindName short label used for metrics and logs.
func KindName(err error) string {
	switch KindOf(err) {
	case ErrConfig:
		return "config"
	case ErrTransport:
		return "transport"
	case ErrNotFound:
		return "not_found"
	case ErrRejected:
		return "rejected"
	case ErrInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}
