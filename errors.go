package xbase

import "github.com/mkfoss/xbase/internal/dbfcore"

// Error is returned by every fallible Table operation; callers that need
// to branch on failure class use errors.As with a *xbase.Error target
// (var e *xbase.Error; errors.As(err, &e)) to recover Kind.
type Error = dbfcore.Error

// Kind classifies an Error into one of a fixed set of failure categories.
type Kind = dbfcore.Kind

const (
	SchemaInvalid       = dbfcore.KindSchemaInvalid
	FieldUnknown        = dbfcore.KindFieldUnknown
	ValueTooLong        = dbfcore.KindValueTooLong
	ValueOverflow       = dbfcore.KindValueOverflow
	IndexOutOfRange     = dbfcore.KindIndexOutOfRange
	FormatError         = dbfcore.KindFormatError
	EncodingUnsupported = dbfcore.KindEncodingUnsupported
	IOError             = dbfcore.KindIOError
)
