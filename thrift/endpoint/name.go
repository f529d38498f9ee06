package endpoint

import "strings"

// Name identifies one endpoint as "ServiceRef.method", where ServiceRef may
// itself carry a namespace, e.g. "calc.Calculator.add".
type Name string

// Service returns the service reference portion.
func (n Name) Service() string {
	name := string(n)
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[:idx]
	}
	return name
}

// Method returns the method portion.
func (n Name) Method() string {
	name := string(n)
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[idx+1:]
	}
	return ""
}

func (n Name) String() string {
	return string(n)
}

// NewName builds a name from its parts.
func NewName(service, method string) Name {
	return Name(service + "." + method)
}

// Canonical normalises the spellings users type on the command line:
// "Calculator/add" and "Calculator:add" both mean "Calculator.add".
func Canonical(name string) Name {
	r := strings.TrimSpace(name)
	r = strings.ReplaceAll(r, "/", ".")
	r = strings.ReplaceAll(r, ":", ".")
	return Name(r)
}
