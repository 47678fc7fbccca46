// Package defs declares the identities manipulated by the analysis.
package defs

import (
	u "github.com/ibex-analyzer/ibex/utils"

	c "github.com/fatih/color"
)

var colorize = struct {
	Var   func(...interface{}) string
	Index func(...interface{}) string
}{
	Var: func(is ...interface{}) string {
		return u.CanColorize(c.New(c.FgYellow).SprintFunc())(is...)
	},
	Index: func(is ...interface{}) string {
		return u.CanColorize(c.New(c.FgHiCyan).SprintFunc())(is...)
	},
}

// Variable is an opaque program variable identity. Variables are
// totally ordered by their index; names are carried for printing only.
type Variable struct {
	name  string
	index uint32
}

// Name returns the variable's print name.
func (v Variable) Name() string {
	return v.name
}

// Index returns the variable's dense index.
func (v Variable) Index() uint32 {
	return v.index
}

func (v Variable) String() string {
	return colorize.Var(v.name)
}

// Hash makes Variable usable as a Patricia tree key.
func (v Variable) Hash() uint32 {
	return v.index
}

// Equal compares variable identities. Names do not participate.
func (v Variable) Equal(o Variable) bool {
	return v.index == o.index
}

// Cmp orders variables by index.
func (v Variable) Cmp(o Variable) int {
	switch {
	case v.index < o.index:
		return -1
	case v.index > o.index:
		return 1
	}
	return 0
}

// VarContext mints variables with unique indices. Variables from
// different contexts must not be mixed in one abstract state.
type VarContext struct {
	next   uint32
	byName map[string]Variable
}

func NewVarContext() *VarContext {
	return &VarContext{byName: make(map[string]Variable)}
}

// Var returns the variable named s, minting it on first use.
func (ctx *VarContext) Var(s string) Variable {
	if v, ok := ctx.byName[s]; ok {
		return v
	}
	v := ctx.Fresh(s)
	ctx.byName[s] = v
	return v
}

// Fresh mints a new variable, even if the name was seen before.
func (ctx *VarContext) Fresh(s string) Variable {
	v := Variable{name: s, index: ctx.next}
	ctx.next++
	return v
}
