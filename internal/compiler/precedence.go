package compiler

import "lumen/internal/token"

// Precedence orders binding strength from loosest to tightest, per the
// Pratt table in spec §4.5.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * / %
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

// parseFn is a Pratt prefix or infix parse function. canAssign gates
// whether an unconsumed trailing `=` is legal at this point (§4.5).
type parseFn func(c *Compiler, canAssign bool)

// rule is one row of the precedence table: prefix handler, infix
// handler, and the infix precedence used to decide whether
// parsePrecedence should keep consuming.
type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules maps each token kind to its parse rule. The NUMBER/and_ mix-up
// noted as an open question in spec §9 is not reproduced here: and_ is
// attached to the AND token, and NUMBER has no infix rule.
var rules map[token.Kind]rule

func init() {
	rules = map[token.Kind]rule{
		token.LeftParen:    {prefix: (*Compiler).grouping, infix: (*Compiler).call, precedence: PrecCall},
		token.Dot:          {infix: (*Compiler).dot, precedence: PrecCall},
		token.Minus:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PrecTerm},
		token.Plus:         {infix: (*Compiler).binary, precedence: PrecTerm},
		token.Slash:        {infix: (*Compiler).binary, precedence: PrecFactor},
		token.Star:         {infix: (*Compiler).binary, precedence: PrecFactor},
		token.Percent:      {infix: (*Compiler).binary, precedence: PrecFactor},
		token.Bang:         {prefix: (*Compiler).unary},
		token.BangEqual:    {infix: (*Compiler).binary, precedence: PrecEquality},
		token.EqualEqual:   {infix: (*Compiler).binary, precedence: PrecEquality},
		token.Greater:      {infix: (*Compiler).binary, precedence: PrecComparison},
		token.GreaterEqual: {infix: (*Compiler).binary, precedence: PrecComparison},
		token.Less:         {infix: (*Compiler).binary, precedence: PrecComparison},
		token.LessEqual:    {infix: (*Compiler).binary, precedence: PrecComparison},
		token.Identifier:   {prefix: (*Compiler).variable},
		token.String:       {prefix: (*Compiler).stringLiteral},
		token.Number:       {prefix: (*Compiler).number},
		token.And:          {infix: (*Compiler).and, precedence: PrecAnd},
		token.Or:           {infix: (*Compiler).or, precedence: PrecOr},
		token.False:        {prefix: (*Compiler).literal},
		token.Nil:          {prefix: (*Compiler).literal},
		token.True:         {prefix: (*Compiler).literal},
		token.This:         {prefix: (*Compiler).this},
		token.Super:        {prefix: (*Compiler).super},
	}
}

func getRule(k token.Kind) rule {
	return rules[k]
}
