package ast

import (
	"testing"

	"github.com/rhysd/dachs/internal/token"
)

func TestExprMetaTypeSlotStartsEmpty(t *testing.T) {
	lit := &IntLiteral{ExprMeta: ExprMeta{Meta: NewMeta(token.Position{Line: 1, Column: 1})}, Value: 42}
	if lit.Type() != nil {
		t.Fatalf("fresh literal should have an empty type slot, got %v", lit.Type())
	}
}

func TestNodeIDsAreDistinct(t *testing.T) {
	a := NewMeta(token.Position{Line: 1, Column: 1})
	b := NewMeta(token.Position{Line: 1, Column: 2})
	if a.ID() == b.ID() {
		t.Fatalf("two freshly-created nodes must not share an id")
	}
}

func TestInspectVisitsNestedExpressions(t *testing.T) {
	left := &IntLiteral{ExprMeta: ExprMeta{Meta: NewMeta(token.Position{})}, Value: 1}
	right := &IntLiteral{ExprMeta: ExprMeta{Meta: NewMeta(token.Position{})}, Value: 2}
	bin := &BinaryExpression{ExprMeta: ExprMeta{Meta: NewMeta(token.Position{})}, Operator: "+", Left: left, Right: right}

	var seen []Node
	Inspect(bin, func(n Node) bool {
		seen = append(seen, n)
		return true
	})

	if len(seen) != 3 {
		t.Fatalf("expected to visit the binary expr plus both operands, got %d nodes", len(seen))
	}
}

func TestInspectStopsDescendingWhenVisitorReturnsFalse(t *testing.T) {
	left := &IntLiteral{ExprMeta: ExprMeta{Meta: NewMeta(token.Position{})}, Value: 1}
	right := &IntLiteral{ExprMeta: ExprMeta{Meta: NewMeta(token.Position{})}, Value: 2}
	bin := &BinaryExpression{ExprMeta: ExprMeta{Meta: NewMeta(token.Position{})}, Operator: "+", Left: left, Right: right}

	count := 0
	Inspect(bin, func(n Node) bool {
		count++
		return false
	})

	if count != 1 {
		t.Fatalf("expected Inspect to stop after the root, visited %d nodes", count)
	}
}

func TestAnonymousLambdaName(t *testing.T) {
	name := AnonymousLambdaName(3, 5, 7)
	if name != "lambda.3.5.7" {
		t.Fatalf("unexpected lambda name: %s", name)
	}
}
