package pass

import "testing"

func TestMatchesGrammarAcceptsKnownKeyword(t *testing.T) {
	if !matchesGrammar("fill-rule", "evenodd") {
		t.Fatal("expected evenodd to match fill-rule grammar")
	}
}

func TestMatchesGrammarRejectsUnknownKeyword(t *testing.T) {
	if matchesGrammar("fill-rule", "banana") {
		t.Fatal("expected banana not to match fill-rule grammar")
	}
}

func TestMatchesGrammarDefaultsTrueForUngovernedProperty(t *testing.T) {
	if !matchesGrammar("transform", "whatever-is-here") {
		t.Fatal("expected properties with no registered grammar to never be judged unknown")
	}
}
