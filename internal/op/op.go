// Package op enumerates the operators an abstract value can be produced by.
package op

// Tag names the last forward operator applied to a value.
type Tag uint8

const (
	Unknown Tag = iota
	Any
	Lift
	Lower
	Join
	Meet

	// integer arithmetic
	Add
	Sub
	Mul
	SDiv
	UDiv
	SRem
	URem

	// bitwise
	And
	Or
	Xor
	Shl
	LShr
	AShr

	// integer comparisons
	Eq
	Ne
	Slt
	Sle
	Sgt
	Sge
	Ult
	Ule
	Ugt
	Uge

	// casts
	ZExt
	SExt
	Trunc
	ZFit
	IntToPtr
	PtrToInt

	// floating point
	FAdd
	FSub
	FMul
	FDiv
	FRem
	FNeg
	FOeq
	FOne
	FOlt
	FOle
	FOgt
	FOge
	FPTrunc
	FPExt
	FPToSI
	FPToUI
	SIToFP
	UIToFP

	// bit-level and memory
	Concat
	Extract
	Alloca
	Load
	Store
	Malloc
	Realloc
	Free
	Dealloca

	NumTags
)

var names = [NumTags]string{
	Unknown: "unknown", Any: "any", Lift: "lift", Lower: "lower", Join: "join", Meet: "meet",
	Add: "add", Sub: "sub", Mul: "mul", SDiv: "sdiv", UDiv: "udiv", SRem: "srem", URem: "urem",
	And: "and", Or: "or", Xor: "xor", Shl: "shl", LShr: "lshr", AShr: "ashr",
	Eq: "eq", Ne: "ne", Slt: "slt", Sle: "sle", Sgt: "sgt", Sge: "sge",
	Ult: "ult", Ule: "ule", Ugt: "ugt", Uge: "uge",
	ZExt: "zext", SExt: "sext", Trunc: "trunc", ZFit: "zfit", IntToPtr: "inttoptr", PtrToInt: "ptrtoint",
	FAdd: "fadd", FSub: "fsub", FMul: "fmul", FDiv: "fdiv", FRem: "frem", FNeg: "fneg",
	FOeq: "foeq", FOne: "fone", FOlt: "folt", FOle: "fole", FOgt: "fogt", FOge: "foge",
	FPTrunc: "fptrunc", FPExt: "fpext", FPToSI: "fptosi", FPToUI: "fptoui", SIToFP: "sitofp", UIToFP: "uitofp",
	Concat: "concat", Extract: "extract", Alloca: "alloca", Load: "load", Store: "store",
	Malloc: "malloc", Realloc: "realloc", Free: "free", Dealloca: "dealloca",
}

func (t Tag) String() string {
	if t < NumTags {
		return names[t]
	}
	return "invalid"
}

// Valid reports whether t is a known tag.
func (t Tag) Valid() bool { return t < NumTags }

// Class groups tags by the shape of their forward function.
type Class uint8

const (
	ClassSpecial Class = iota
	ClassBinary
	ClassCompare
	ClassCast
	ClassFloat
	ClassMemory
)

// Class returns the operator class of t.
func (t Tag) Class() Class {
	switch {
	case t >= Add && t <= AShr, t == Join, t == Meet:
		return ClassBinary
	case t >= Eq && t <= Uge:
		return ClassCompare
	case t >= ZExt && t <= PtrToInt:
		return ClassCast
	case t >= FAdd && t <= UIToFP:
		return ClassFloat
	case t >= Concat && t <= Dealloca:
		return ClassMemory
	default:
		return ClassSpecial
	}
}

// IsCompare reports whether t yields a boolean.
func (t Tag) IsCompare() bool {
	return t.Class() == ClassCompare || (t >= FOeq && t <= FOge)
}

// Swap returns the comparison that holds when the operands are exchanged:
// a < b is b > a.
func (t Tag) Swap() Tag {
	switch t {
	case Slt:
		return Sgt
	case Sle:
		return Sge
	case Sgt:
		return Slt
	case Sge:
		return Sle
	case Ult:
		return Ugt
	case Ule:
		return Uge
	case Ugt:
		return Ult
	case Uge:
		return Ule
	default:
		return t
	}
}

// Negate returns the comparison that holds when t is false.
func (t Tag) Negate() Tag {
	switch t {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Slt:
		return Sge
	case Sle:
		return Sgt
	case Sgt:
		return Sle
	case Sge:
		return Slt
	case Ult:
		return Uge
	case Ule:
		return Ugt
	case Ugt:
		return Ule
	case Uge:
		return Ult
	default:
		return t
	}
}

// Signed maps an unsigned comparison onto its signed counterpart.
func (t Tag) Signed() Tag {
	switch t {
	case Ult:
		return Slt
	case Ule:
		return Sle
	case Ugt:
		return Sgt
	case Uge:
		return Sge
	case UDiv:
		return SDiv
	case URem:
		return SRem
	default:
		return t
	}
}

// Parse looks a tag up by name.
func Parse(name string) (Tag, bool) {
	for i, n := range names {
		if n == name {
			return Tag(i), true
		}
	}
	return Unknown, false
}
