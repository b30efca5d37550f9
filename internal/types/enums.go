package types

type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueArray
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueBool:
		return "bool"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueArray:
		return "array"
	case ValueObject:
		return "object"
	default:
		return "unknown"
	}
}

type ChangeOp string

const (
	ChangeAdded   ChangeOp = "added"
	ChangeChanged ChangeOp = "changed"
	ChangeRemoved ChangeOp = "removed"
)

type ErrorKind string

const (
	ErrorKindNone       ErrorKind = ""
	ErrorKindParse      ErrorKind = "parse"
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindIO         ErrorKind = "io"
)

type DescriptorType string

const (
	DescriptorTypeModule  DescriptorType = "module"
	DescriptorTypeTheme   DescriptorType = "theme"
	DescriptorTypeProfile DescriptorType = "profile"
)
