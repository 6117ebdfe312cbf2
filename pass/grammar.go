package pass

import (
	"strings"

	"github.com/svgshrink/svgshrink/internal/cssvalue"
)

// presentationGrammars are CSS Values-and-Units grammar strings (§4.F:
// "Unknowns" half of removeUnknownsAndDefaults) for the presentation
// properties small and closed enough to express as a hand-written
// grammar. Properties absent from this table are left to
// presentationDefaults alone — only an exact default-value match is
// ever grounds for removal, never a grammar mismatch.
var presentationGrammars = map[string]string{
	"fill-rule":       "nonzero | evenodd",
	"clip-rule":       "nonzero | evenodd",
	"stroke-linecap":  "butt | round | square",
	"stroke-linejoin": "miter | round | bevel",
	"visibility":      "visible | hidden | collapse",
	"overflow":        "visible | hidden | scroll | auto",
	"pointer-events":  "auto | none | visiblePainted | visibleFill | visibleStroke | visible | painted | fill | stroke | all",
}

// compiledGrammars is built once in init() and never written again, so
// concurrent readers (pipeline.RunBatch runs documents on separate
// goroutines, each calling matchesGrammar) need no further
// synchronization.
var compiledGrammars = map[string]cssvalue.Term{}

func init() {
	for property, src := range presentationGrammars {
		term, err := cssvalue.ParseGrammar(strings.NewReader(src))
		if err != nil {
			panic("pass: invalid grammar for " + property + ": " + err.Error())
		}
		compiledGrammars[property] = term
	}
}

func grammarFor(property string) (cssvalue.Term, bool) {
	term, ok := compiledGrammars[property]
	return term, ok
}

// matchesGrammar reports whether value is a syntactically valid value
// for property per its CSS Values-and-Units grammar. Properties with no
// registered grammar always report true: removeUnknownsAndDefaults must
// never strip an attribute it has no rule to judge.
func matchesGrammar(property, value string) bool {
	term, ok := grammarFor(property)
	if !ok {
		return true
	}
	captures := cssvalue.Match(nil, term, strings.NewReader(value))
	return captures != nil
}
