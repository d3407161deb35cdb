package ir

import "strings"

// Scalar type tags form a closed table; unknown tags are a typed error in
// gomap, never a silent string fallback.
const (
	StringTag   = "String"
	IntTag      = "Int"
	LongTag     = "Long"
	BoolTag     = "Bool"
	DecimalTag  = "Decimal"
	DoubleTag   = "Double"
	SingleTag   = "Single"
	ByteTag     = "Byte"
	CharTag     = "Char"
	DateTimeTag = "DateTime"
	GuidTag     = "Guid"
	XmlTag      = "Xml"

	HashTableTag  = "HashTable"
	CredentialTag = "Credential"

	UserBoundTag = "DPAPI"
	AES256Tag    = "AES256"

	// RawTag marks records that only preserve file content (comments,
	// blank lines); they are excluded from lookups and counts.
	RawTag = "Cfg.File.Format"

	// ArraySuffix turns any element tag into its array tag.
	ArraySuffix = "[]"
)

type Kind int

const (
	KindScalar Kind = iota
	KindArray
	KindMap
	KindCredential
	KindEnvelope
	KindRaw
)

func (k Kind) String() string {
	return map[Kind]string{
		KindScalar:     "KindScalar",
		KindArray:      "KindArray",
		KindMap:        "KindMap",
		KindCredential: "KindCredential",
		KindEnvelope:   "KindEnvelope",
		KindRaw:        "KindRaw",
	}[k]
}

// KindOf classifies a type tag. Tag comparison is case-insensitive, as
// everywhere in the format. The empty tag is the String scalar default.
func KindOf(tag string) Kind {
	switch {
	case tag == "":
		return KindScalar
	case strings.EqualFold(tag, RawTag):
		return KindRaw
	case strings.HasSuffix(tag, ArraySuffix):
		return KindArray
	case strings.EqualFold(tag, HashTableTag):
		return KindMap
	case strings.EqualFold(tag, CredentialTag):
		return KindCredential
	case strings.EqualFold(tag, UserBoundTag), strings.EqualFold(tag, AES256Tag):
		return KindEnvelope
	default:
		return KindScalar
	}
}

// ElemTag returns the element tag of an array tag, or "" if tag is not an
// array tag.
func ElemTag(tag string) string {
	if !strings.HasSuffix(tag, ArraySuffix) {
		return ""
	}
	return tag[:len(tag)-len(ArraySuffix)]
}

// IsComposite reports whether records of this tag carry children after
// parsing (arrays and maps; envelopes and credentials stay opaque text).
func IsComposite(tag string) bool {
	k := KindOf(tag)
	return k == KindArray || k == KindMap
}
