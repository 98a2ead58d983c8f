package retargeterr

import (
	"fmt"
	"strings"
)

// ErrorKind defines the category of the error.
type ErrorKind string

const (
	KindTypeNotFound         ErrorKind = "TypeNotFound"
	KindAmbiguousType        ErrorKind = "AmbiguousType"
	KindMemberNotFound       ErrorKind = "MemberNotFound"
	KindUnsupportedConstruct ErrorKind = "UnsupportedConstruct"
	KindInternal             ErrorKind = "Internal"
)

// RetargetError is the interface for all retargeting errors.
type RetargetError interface {
	error
	Kind() ErrorKind
}

// BaseError provides common fields for retargeting errors. Session, when
// set, identifies the resolution session that raised the error.
type BaseError struct {
	Msg     string
	ErrKind ErrorKind
	Session string
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("[%s] %s%s", e.ErrKind, e.Msg, e.session())
}

func (e *BaseError) Kind() ErrorKind {
	return e.ErrKind
}

func (e *BaseError) session() string {
	if e.Session == "" {
		return ""
	}
	return " (session " + e.Session + ")"
}

// TypeNotFoundError is raised when a type's qualified name has no match in
// the destination universe.
type TypeNotFoundError struct {
	BaseError
	TypeName string
	Modules  []string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("[%s] type %s not found in universe [%s]; check that all referenced assemblies are part of the universe%s",
		e.ErrKind, e.TypeName, strings.Join(e.Modules, ", "), e.session())
}

// AmbiguousTypeError is raised when more than one distinct type in the
// destination universe matches a qualified name.
type AmbiguousTypeError struct {
	BaseError
	TypeName string
	Modules  []string
}

func (e *AmbiguousTypeError) Error() string {
	return fmt.Sprintf("[%s] type %s is ambiguous in universe [%s]; narrow the module references so the name resolves to a single type%s",
		e.ErrKind, e.TypeName, strings.Join(e.Modules, ", "), e.session())
}

// MemberNotFoundError is raised when a property, field, method, or
// constructor has no exact-signature match on the resolved declaring type.
type MemberNotFoundError struct {
	BaseError
	MemberKind    string // "property", "field", "method", "constructor"
	Member        string // display form, e.g. "Map(key string) int"
	DeclaringType string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("[%s] %s %s not found on %s",
		e.ErrKind, e.MemberKind, e.Member, e.DeclaringType)
}

// UnsupportedConstructError is raised for expression shapes the rewriter
// cannot carry across universes.
type UnsupportedConstructError struct {
	BaseError
	Construct string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.ErrKind, e.Construct, e.Msg)
}

// InternalError signals a programming error inside the engine, not a user
// authoring error. It is meant to be passed to panic.
type InternalError struct {
	BaseError
}

// NewTypeNotFound creates a TypeNotFoundError for the given display name and
// destination module list.
func NewTypeNotFound(typeName string, modules []string) *TypeNotFoundError {
	return &TypeNotFoundError{
		BaseError: BaseError{Msg: typeName, ErrKind: KindTypeNotFound},
		TypeName:  typeName,
		Modules:   modules,
	}
}

// NewAmbiguousType creates an AmbiguousTypeError for the given display name
// and destination module list.
func NewAmbiguousType(typeName string, modules []string) *AmbiguousTypeError {
	return &AmbiguousTypeError{
		BaseError: BaseError{Msg: typeName, ErrKind: KindAmbiguousType},
		TypeName:  typeName,
		Modules:   modules,
	}
}

// NewMemberNotFound creates a MemberNotFoundError.
func NewMemberNotFound(memberKind, member, declaringType string) *MemberNotFoundError {
	return &MemberNotFoundError{
		BaseError:     BaseError{Msg: member, ErrKind: KindMemberNotFound},
		MemberKind:    memberKind,
		Member:        member,
		DeclaringType: declaringType,
	}
}

// NewUnsupportedConstruct creates an UnsupportedConstructError.
func NewUnsupportedConstruct(construct, msg string) *UnsupportedConstructError {
	return &UnsupportedConstructError{
		BaseError: BaseError{Msg: msg, ErrKind: KindUnsupportedConstruct},
		Construct: construct,
	}
}

// NewInternal creates an InternalError. Callers panic with the returned
// value; it never crosses the public API as an ordinary error.
func NewInternal(msg string) *InternalError {
	return &InternalError{
		BaseError: BaseError{Msg: msg, ErrKind: KindInternal},
	}
}
