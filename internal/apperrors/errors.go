package apperrors

import "errors"

// Fetch errors classify failures of outbound provider calls.
// Provider clients return exactly one of these (wrapped) for every expected
// failure mode; callers treat all of them as "no data available" and degrade
// rather than propagating them to the API surface.
var (
	// ErrNetwork indicates a transport-level failure reaching the provider.
	ErrNetwork = errors.New("network failure")

	// ErrTimeout indicates the adapter-specific deadline was exceeded.
	ErrTimeout = errors.New("request timed out")

	// ErrNoData indicates a well-formed response that is semantically empty,
	// e.g. a payload missing its identifying fund code.
	ErrNoData = errors.New("no data in response")

	// ErrParse indicates a malformed payload (unparseable JSON, JS variable
	// block, or HTML table).
	ErrParse = errors.New("malformed payload")
)

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrHoldingNotFound indicates that no holding with the given fund code exists.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrFundNotFound indicates that a fund with the given code is unknown to
	// every configured data source.
	ErrFundNotFound = errors.New("fund not found")

	// ErrSettingNotFound indicates that a persisted settings key has no value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidFundCode indicates that a fund code is not exactly six digits.
	ErrInvalidFundCode = errors.New("fund code must be six digits")

	// ErrInvalidDataSource indicates an unrecognized data source selection.
	ErrInvalidDataSource = errors.New("invalid data source")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrEmptyImport indicates that a broker import produced no parseable lines.
	ErrEmptyImport = errors.New("no parseable holdings in import text")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Operation failure errors represent system-level failures when the primary
// batch fetch yields nothing at all; individual field-level gaps never raise these.
var (
	// ErrAllSourcesFailed indicates the hot-fund batch fetch returned zero
	// results, the only condition surfaced to users as a coarse failure banner.
	ErrAllSourcesFailed = errors.New("data load failed, please retry")
)
