package garage

import "fmt"

// ErrorKind groups garage errors by how a caller is expected to react
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindInvalidVehicleType
	KindCapacityExhausted
	KindReferenceNotFound
	KindLocationMismatch
	KindPoolExhausted
	KindInvalidSnapshot
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindInvalidVehicleType:
		return "InvalidVehicleType"
	case KindCapacityExhausted:
		return "CapacityExhausted"
	case KindReferenceNotFound:
		return "ReferenceNotFound"
	case KindLocationMismatch:
		return "LocationMismatch"
	case KindPoolExhausted:
		return "PoolExhausted"
	case KindInvalidSnapshot:
		return "InvalidSnapshot"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by the allocation engine.
// Code, Cause and Message form the stable triple reported to callers.
type Error struct {
	Kind    ErrorKind
	Code    string
	Cause   string
	Message string
}

func (e *Error) Error() string {
	if e.Cause != "" && e.Cause != e.Code {
		return fmt.Sprintf("%s: %s", e.Code, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on Kind, and on Code too when the target sets one
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// Sentinels for errors.Is checks by kind
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrInvalidVehicleType = &Error{Kind: KindInvalidVehicleType}
	ErrCapacityExhausted  = &Error{Kind: KindCapacityExhausted}
	ErrReferenceNotFound  = &Error{Kind: KindReferenceNotFound}
	ErrLocationMismatch   = &Error{Kind: KindLocationMismatch}
	ErrPoolExhausted      = &Error{Kind: KindPoolExhausted}
	ErrInvalidSnapshot    = &Error{Kind: KindInvalidSnapshot}
)

// Sentinels for specific codes
var (
	ErrGarageFull       = &Error{Kind: KindCapacityExhausted, Code: CodeGarageFull}
	ErrInvalidVehicleID = &Error{Kind: KindReferenceNotFound, Code: CodeInvalidVehicleID}
	ErrInvalidLevelID   = &Error{Kind: KindReferenceNotFound, Code: CodeInvalidLevelID}
	ErrInvalidRowID     = &Error{Kind: KindReferenceNotFound, Code: CodeInvalidRowID}
	ErrInvalidSpotID    = &Error{Kind: KindReferenceNotFound, Code: CodeInvalidSpotID}
	ErrNotAssigned      = &Error{Kind: KindReferenceNotFound, Code: CodeNotAssigned}
	ErrVehicleNotInSpot = &Error{Kind: KindLocationMismatch, Code: CodeVehicleNotInSpot}
)

const (
	CodeInvalidVehicleType = "Invalid Vehicle Type"
	CodeGarageFull         = "Garage Full"
	CodeInvalidVehicleID   = "Invalid Vehicle ID"
	CodeInvalidLevelID     = "Invalid Level ID"
	CodeInvalidRowID       = "Invalid Row ID"
	CodeInvalidSpotID      = "Invalid Spot ID"
	CodeVehicleNotInSpot   = "Vehicle Not in Spot"
	CodePoolExhausted      = "Pool Exhausted"
	CodeNotAssigned        = "Not Assigned"
	CodeInvalidSnapshot    = "Invalid Garage Document"

	codeInvalidInputPrefix = "Invalid Input: "
	codeFullForTypePrefix  = "Full for Vehicle Type: "
)

// NewValidationError reports a missing or mistyped request field
func NewValidationError(field, cause string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    codeInvalidInputPrefix + field,
		Cause:   cause,
		Message: "Please try again with a valid " + field,
	}
}

func NewInvalidVehicleTypeError(code int) *Error {
	return &Error{
		Kind:    KindInvalidVehicleType,
		Code:    CodeInvalidVehicleType,
		Cause:   fmt.Sprintf("vehicle type %d is not one of 0, 1, 2", code),
		Message: "Please enter correct Vehicle Type",
	}
}

func NewGarageFullError() *Error {
	return &Error{
		Kind:    KindCapacityExhausted,
		Code:    CodeGarageFull,
		Cause:   CodeGarageFull,
		Message: "Please come again",
	}
}

func NewVehicleTypeFullError(v VehicleType) *Error {
	code := codeFullForTypePrefix + v.Name()
	return &Error{
		Kind:    KindCapacityExhausted,
		Code:    code,
		Cause:   code,
		Message: "Please come again",
	}
}

func NewInvalidVehicleIDError(id string) *Error {
	return &Error{
		Kind:    KindReferenceNotFound,
		Code:    CodeInvalidVehicleID,
		Cause:   fmt.Sprintf("vehicle %q is not assigned", id),
		Message: "Please enter correct Vehicle ID",
	}
}

func NewInvalidLevelIDError(id string) *Error {
	return &Error{
		Kind:    KindReferenceNotFound,
		Code:    CodeInvalidLevelID,
		Cause:   fmt.Sprintf("level %q does not exist", id),
		Message: "Please enter correct Level ID",
	}
}

func NewInvalidRowIDError(levelID, rowID string) *Error {
	return &Error{
		Kind:    KindReferenceNotFound,
		Code:    CodeInvalidRowID,
		Cause:   fmt.Sprintf("row %q does not exist on level %q", rowID, levelID),
		Message: "Please enter correct Row ID",
	}
}

func NewInvalidSpotIDError(spotID string) *Error {
	return &Error{
		Kind:    KindReferenceNotFound,
		Code:    CodeInvalidSpotID,
		Cause:   fmt.Sprintf("no spot in %q exists in the row", spotID),
		Message: "Please enter correct Spot ID",
	}
}

func NewVehicleNotInSpotError(vehicleID, spotID string) *Error {
	return &Error{
		Kind:    KindLocationMismatch,
		Code:    CodeVehicleNotInSpot,
		Cause:   fmt.Sprintf("vehicle %q does not occupy exactly spots %q", vehicleID, spotID),
		Message: "Please enter correct Spot ID or Vehicle ID",
	}
}

// NewPoolExhaustedError signals that an ID pool ran dry. Given the ID-space
// invariant this only happens on corrupted state.
func NewPoolExhaustedError(pool string) *Error {
	return &Error{
		Kind:    KindPoolExhausted,
		Code:    CodePoolExhausted,
		Cause:   fmt.Sprintf("%s pool has no available ids", pool),
		Message: "Garage state is inconsistent",
	}
}

// NewNotAvailableError signals an attempt to take an ID that is not free,
// which like an exhausted pool points at corrupted state
func NewNotAvailableError(pool, id string) *Error {
	return &Error{
		Kind:    KindPoolExhausted,
		Code:    CodePoolExhausted,
		Cause:   fmt.Sprintf("%s id %q is not available", pool, id),
		Message: "Garage state is inconsistent",
	}
}

func NewNotAssignedError(pool, id string) *Error {
	return &Error{
		Kind:    KindReferenceNotFound,
		Code:    CodeNotAssigned,
		Cause:   fmt.Sprintf("%s id %q is not assigned", pool, id),
		Message: "ID was not assigned in system",
	}
}

// NewInvalidSnapshotError reports a garage document that violates the
// capacity model invariants
func NewInvalidSnapshotError(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindInvalidSnapshot,
		Code:    CodeInvalidSnapshot,
		Cause:   fmt.Sprintf(format, args...),
		Message: "Garage document is invalid",
	}
}
