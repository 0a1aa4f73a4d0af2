package wxf

import (
	"strings"

	"github.com/hengadev/wxf/internal/wxferr"
)

const (
	// SystemContext is the implicit context of built-in symbols.
	SystemContext = ""
	// GlobalContext is the default context of user symbols.
	GlobalContext = "Global`"
)

// Symbol is a possibly context-qualified identifier such as Sin or
// Global`x.
//
// A symbol built by NewSymbol carries only a bare name and is qualified
// when it is encoded, so the binary and text encoders always agree on the
// emitted name.
type Symbol struct {
	context string
	name    string
	fixed   bool
}

// Name returns the unqualified name.
func (s Symbol) Name() string {
	return s.name
}

// Context returns the explicit context, or "" for system symbols and for
// bare names that are qualified lazily.
func (s Symbol) Context() string {
	return s.context
}

// IsBare reports whether the symbol is qualified at encode time.
func (s Symbol) IsBare() bool {
	return !s.fixed
}

// FullName returns the name as emitted with the Global default context.
func (s Symbol) FullName() string {
	return s.qualified(GlobalContext)
}

func (s Symbol) String() string {
	return s.FullName()
}

func (s Symbol) qualified(defaultContext string) string {
	if s.fixed {
		return s.context + s.name
	}
	return QualifyNameIn(s.name, defaultContext)
}

// NewSymbol returns a symbol whose context is decided at encode time:
// names containing a backtick are used as given, built-in names stay
// unqualified and everything else lands in the encoder's default context.
func NewSymbol(name string) (Value, error) {
	if err := validateSymbolPart(name, "name"); err != nil {
		return Value{}, err
	}
	return Value{kind: KindSymbol, sym: Symbol{name: name}}, nil
}

// SystemSymbol returns a symbol in the implicit system context. It is
// emitted unqualified whether or not the registry knows the name.
func SystemSymbol(name string) (Value, error) {
	return ContextSymbol(SystemContext, name)
}

// GlobalSymbol returns Global`name.
func GlobalSymbol(name string) (Value, error) {
	return ContextSymbol(GlobalContext, name)
}

// ContextSymbol returns context`name. A missing trailing backtick on
// context is added.
func ContextSymbol(context, name string) (Value, error) {
	if err := validateSymbolPart(name, "name"); err != nil {
		return Value{}, err
	}
	if context != "" {
		if err := validateSymbolPart(context, "context"); err != nil {
			return Value{}, err
		}
		context = normalizeContext(context)
	}
	return Value{kind: KindSymbol, sym: Symbol{context: context, name: name, fixed: true}}, nil
}

// QualifyName resolves name against the Global context.
func QualifyName(name string) string {
	return QualifyNameIn(name, GlobalContext)
}

// QualifyNameIn resolves name the way the encoders do: names containing a
// backtick are returned unchanged, registered system names stay
// unqualified and any other name is prefixed with context. An empty
// context means Global. The function is pure and idempotent.
func QualifyNameIn(name, context string) string {
	if strings.ContainsRune(name, '`') || IsSystemSymbol(name) {
		return name
	}
	if context == "" {
		context = GlobalContext
	}
	return normalizeContext(context) + name
}

// ValidateContext checks that context can prefix symbol names.
func ValidateContext(context string) error {
	return validateSymbolPart(context, "context")
}

func normalizeContext(context string) string {
	if strings.HasSuffix(context, "`") {
		return context
	}
	return context + "`"
}

func validateSymbolPart(s string, part string) error {
	if s == "" {
		return wxferr.NewInvalidSymbolError(s, part+" cannot be empty")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '`') {
			return wxferr.NewInvalidSymbolError(s, part+" may only contain ASCII letters, digits and '`'")
		}
	}
	return nil
}

// mustSystem builds symbols for names that are known to be valid.
func mustSystem(name string) Value {
	v, err := SystemSymbol(name)
	if err != nil {
		panic(err)
	}
	return v
}

var (
	symbolList        = mustSystem("List")
	symbolRule        = mustSystem("Rule")
	symbolRuleDelayed = mustSystem("RuleDelayed")
	symbolTrue        = mustSystem("True")
	symbolFalse       = mustSystem("False")
	symbolNone        = mustSystem("None")
	symbolNull        = mustSystem("Null")
	symbolInfinity    = mustSystem("Infinity")
	symbolNeg         = mustSystem("Neg")
	symbolRational    = mustSystem("Rational")
	symbolComplex     = mustSystem("Complex")
	symbolDateObject  = mustSystem("DateObject")
	symbolQuantity    = mustSystem("Quantity")
)

// None returns the symbol None, used for absent optional values.
func None() Value { return symbolNone }

// Null returns the symbol Null, used for the unit value.
func Null() Value { return symbolNull }
