package identity

import (
	"zappem.net/pub/math/casid/ast"
	"zappem.net/pub/math/casid/simplify"
)

// Table is an ordered list of identities. Earlier identities take
// priority over later ones.
type Table []*Identity

// Execute is ExecuteTable(e, t).
func (t Table) Execute(e *ast.Node) bool {
	return ExecuteTable(e, t)
}

// Unload releases the cached trees of every identity in t.
func (t Table) Unload() {
	for _, id := range t {
		id.Unload()
	}
}

// ExecuteTable applies the identities of table to e in order,
// simplifying e after each one. It stops at the first identity that
// changes e and reports whether one did.
func ExecuteTable(e *ast.Node, table Table) bool {
	for _, id := range table {
		changed := id.Execute(e)
		simplify.Simplify(e, simplify.All)
		if changed {
			return true
		}
	}
	return false
}

// In the identity texts below N stands for an integer and I and J for
// real numbers. A trailing +C absorbs the remaining terms of a sum.
// Closing parentheses at the end of a text may be omitted.

// General holds logarithm, root and inverse function identities.
var General = Table{
	New("logb(X^D,B", "Dlogb(X,B"),
	New("logb(X,B)+logb(Y,B)+C", "logb(XY,B)+C"),
	New("logb(X,B)_logb(Y,B)+C", "logb(X/Y,B)+C"),

	New("A^logb(B,A", "B"),
	New("logb(A,A", "1"),

	// TODO: negative A.
	New("(ArootB)^A", "B"),
	New("Aroot(B^A)", "B"),

	New("sin(asin(X", "X"),
	New("asin(sin(X", "X"),
	New("cos(acos(X", "X"),
	New("acos(cos(X", "X"),
	New("tan(atan(X", "X"),
	New("atan(tan(X", "X"),

	New("sinh(asinh(X", "X"),
	New("asinh(sinh(X", "X"),
	New("cosh(acosh(X", "X"),
	New("tanh(atanh(X", "X"),
	New("atanh(tanh(X", "X"),
}

// TrigIdentities holds quotient, shift, symmetry and double angle
// identities.
var TrigIdentities = Table{
	New("sin(X)/cos(X", "tan(X"),
	New("cos(X)/sin(X", "1/tan(X"),

	New("sin(pi/2_X+C", "cos(X+C"),
	New("cos(pi/2_X+C", "sin(X+C"),

	New("sin(C+2piN", "sin(C"),
	New("sin(C+2pi", "sin(C"),
	New("cos(C+2piN", "cos(C"),
	New("cos(C+2pi", "cos(C"),
	New("tan(C+piN", "tan(C"),
	New("tan(C+pi", "tan(C"),

	New("sin(-C", "-sin(C"),
	New("cos(-C", "cos(C"),
	New("tan(-C", "-tan(C"),

	New("2Csin(X)cos(X", "Csin(2X"),
	New("cos(X)^2_sin(X)^2+C", "cos(2X)+C"),
	New("2cos(X)^2_1+C", "cos(2X)+C"),
	New("1_2sin(X)^2+C", "cos(2X)+C"),

	New("sin(X)^2+cos(X)^2+C", "1+C"),
}

// TrigConstants holds exact values of sin, cos and tan at multiples
// of pi/6 and pi/4.
var TrigConstants = Table{
	New("sin(0", "0"),
	New("sin(pi/6", "1/2"),
	New("sin(pi/4", "sqrt(2)/2"),
	New("sin(pi/3", "sqrt(3)/2"),
	New("sin(pi/2", "1"),
	New("sin(2pi/3", "sqrt(3)/2"),
	New("sin(3pi/4", "sqrt(2)/2"),
	New("sin(5pi/6", "1/2"),
	New("sin(pi", "0"),
	New("sin(7pi/6", "-1/2"),
	New("sin(5pi/4", "-sqrt(2)/2"),
	New("sin(4pi/3", "-sqrt(3)/2"),
	New("sin(3pi/2", "-1"),
	New("sin(5pi/3", "-sqrt(3)/2"),
	New("sin(7pi/4", "-sqrt(2)/2"),
	New("sin(11pi/6", "-1/2"),

	New("cos(0", "1"),
	New("cos(pi/6", "sqrt(3)/2"),
	New("cos(pi/4", "sqrt(2)/2"),
	New("cos(pi/3", "1/2"),
	New("cos(pi/2", "0"),
	New("cos(2pi/3", "-1/2"),
	New("cos(3pi/4", "-sqrt(2)/2"),
	New("cos(5pi/6", "-sqrt(3)/2"),
	New("cos(pi", "-1"),
	New("cos(7pi/6", "-sqrt(3)/2"),
	New("cos(5pi/4", "-sqrt(2)/2"),
	New("cos(4pi/3", "-1/2"),
	New("cos(3pi/2", "0"),
	New("cos(5pi/3", "1/2"),
	New("cos(7pi/4", "sqrt(2)/2"),
	New("cos(11pi/6", "sqrt(3)/2"),

	// tan(pi/2) is undefined.
	New("tan(0", "0"),
	New("tan(pi/6", "sqrt(3)/3"),
	New("tan(pi/4", "1"),
	New("tan(pi/3", "sqrt(3)"),
	New("tan(2pi/3", "-sqrt(3"),
	New("tan(3pi/4", "-1"),
	New("tan(5pi/6", "-sqrt(3)/3"),
	New("tan(pi", "0"),
}

// Hyperbolic holds identities of the hyperbolic functions.
var Hyperbolic = Table{
	New("cosh(X)_sinh(X)", "e^(-X"),
	New("sinh(X)/cosh(X", "tanh(X"),
	New("cosh(X)^2_sinh(X)^2+C", "1+C"),
}

// Complex holds identities over complex numbers written I+Ji.
var Complex = Table{
	New("1/i", "-i"),
	New("e^(X(I+Ji", "cos(X)+isin(X"),
	New("(I+Ji)^X", "e^(Xln(I+Ji"),
	New("X^(I+Ji", "e^((I+Ji)ln(X"),
	New("abs(I+Ji", "sqrt(I^2+J^2"),
	New("ln(i", "ipi/2"),
	New("ln(I+Ji", "ln(abs(I+Ji))+iatan(J/I)"),
	New("logb(X,I+Ji", "ln(X)/ln(I+Ji"),
	New("sin(I+Ji", "sin(I)cosh(J)+icos(I)sinh(J"),
	New("cos(I+Ji", "cos(I)cosh(J)_isin(I)sinh(J)"),
	New("tan(I+Ji", "sin(I+Ji)/cos(I+Ji"),
}

// Tables returns the domain tables in the order a front end applies
// them.
func Tables() []Table {
	return []Table{General, TrigIdentities, TrigConstants, Hyperbolic, Complex}
}

// UnloadAll releases the cached trees of every domain table.
func UnloadAll() {
	for _, t := range Tables() {
		t.Unload()
	}
}
