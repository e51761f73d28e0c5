package lexer

// ReservedID tags a keyword lexeme. Built once per process and shared
// read-only across every compilation unit (spec §5, §9: no process-wide
// mutable singletons — this table is written once at init and never
// touched again).
type ReservedID int

const (
	RWNone ReservedID = iota
	RWClass
	RWInterface
	RWExtends
	RWImplements
	RWPublic
	RWPrivate
	RWProtected
	RWStatic
	RWFinal
	RWAbstract
	RWVoid
	RWInt
	RWLong
	RWShort
	RWByte
	RWChar
	RWBoolean
	RWFloat
	RWDouble
	RWIf
	RWElse
	RWWhile
	RWDo
	RWFor
	RWBreak
	RWContinue
	RWReturn
	RWSwitch
	RWCase
	RWDefault
	RWTry
	RWCatch
	RWFinally
	RWThrow
	RWThrows
	RWNew
	RWThis
	RWSuper
	RWNull
	RWTrue
	RWFalse
	RWImport
	RWPackage
	RWInstanceof
	RWSynchronized
	RWVolatile
	RWTransient
	RWNative
	RWStrictfp
	RWConst
	RWGoto
	RWEnum
	RWAssert
)

var reservedWords = map[string]ReservedID{
	"class": RWClass, "interface": RWInterface, "extends": RWExtends,
	"implements": RWImplements, "public": RWPublic, "private": RWPrivate,
	"protected": RWProtected, "static": RWStatic, "final": RWFinal,
	"abstract": RWAbstract, "void": RWVoid, "int": RWInt, "long": RWLong,
	"short": RWShort, "byte": RWByte, "char": RWChar, "boolean": RWBoolean,
	"float": RWFloat, "double": RWDouble, "if": RWIf, "else": RWElse,
	"while": RWWhile, "do": RWDo, "for": RWFor, "break": RWBreak,
	"continue": RWContinue, "return": RWReturn, "switch": RWSwitch,
	"case": RWCase, "default": RWDefault, "try": RWTry, "catch": RWCatch,
	"finally": RWFinally, "throw": RWThrow, "throws": RWThrows, "new": RWNew,
	"this": RWThis, "super": RWSuper, "null": RWNull, "true": RWTrue,
	"false": RWFalse, "import": RWImport, "package": RWPackage,
	"instanceof": RWInstanceof, "synchronized": RWSynchronized,
	"volatile": RWVolatile, "transient": RWTransient, "native": RWNative,
	"strictfp": RWStrictfp, "const": RWConst, "goto": RWGoto,
	"enum": RWEnum, "assert": RWAssert,
}

// ReservedWords looks up str in the shared keyword table.
func ReservedWords(str string) (ReservedID, bool) {
	id, ok := reservedWords[str]
	return id, ok
}
