package values

import (
	"strings"
)

// Package is a peer namespace together with its exported members.
type Package struct {
	Name    string
	Members []Entry
}

func (*Package) Kind() Kind { return KindPackage }

var operatorNames = map[string]string{
	"<":  "lt",
	"<=": "le",
	"=":  "sim",
	">":  "gt",
	">=": "ge",
	"+":  "add",
	"*":  "mul",
	"-":  "sub",
	"/":  "div",
}

// HostName maps a Lisp member name to the identifier used on the host side.
func HostName(lispName string) string {
	if name, ok := operatorNames[lispName]; ok {
		return name
	}
	return strings.ToLower(strings.ReplaceAll(lispName, "-", "_"))
}

func memberName(key Value) string {
	switch key := key.(type) {
	case String:
		return string(key)
	case Symbol:
		return key.Name
	}
	return ""
}

// Lookup finds a member by Lisp name or by host name.
func (p *Package) Lookup(name string) (Value, bool) {
	for _, member := range p.Members {
		lispName := memberName(member.Key)
		if lispName == name || HostName(lispName) == name {
			return member.Value, true
		}
	}
	return nil, false
}

// HostNames returns the host names of all members, in member order.
func (p *Package) HostNames() []string {
	ret := make([]string, 0, len(p.Members))
	for _, member := range p.Members {
		ret = append(ret, HostName(memberName(member.Key)))
	}
	return ret
}
