package values

const (
	KeywordPackage    = "KEYWORD"
	CommonLispPackage = "COMMON-LISP"
	UserPackage       = "COMMON-LISP-USER"
)

// Symbol is a name in a package. An empty Package marks an uninterned symbol.
// Symbols compare structurally with ==.
type Symbol struct {
	Name    string
	Package string
}

func (Symbol) Kind() Kind { return KindSymbol }

func Sym(name, pkg string) Symbol {
	return Symbol{Name: name, Package: pkg}
}

// Keyword returns the symbol named name in the keyword package.
func Keyword(name string) Symbol {
	return Symbol{Name: name, Package: KeywordPackage}
}

// CL returns the symbol named name in the COMMON-LISP package.
func CL(name string) Symbol {
	return Symbol{Name: name, Package: CommonLispPackage}
}

func (s Symbol) IsKeyword() bool {
	return s.Package == KeywordPackage
}

func (s Symbol) IsUninterned() bool {
	return s.Package == ""
}

func (s Symbol) String() string {
	switch {
	case s.IsKeyword():
		return ":" + s.Name
	case s.IsUninterned():
		return "#:" + s.Name
	}
	return s.Package + "::" + s.Name
}

// IsReservedPackage reports whether pkg names the package owning T and NIL.
func IsReservedPackage(pkg string) bool {
	return pkg == CommonLispPackage || pkg == "CL"
}
