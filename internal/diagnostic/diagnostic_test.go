package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dauw-lang/dauw/internal/source"
)

func TestCollectorHasErrorsAfterReport(t *testing.T) {
	c := &Collector{}
	assert.False(t, c.HasErrors())

	c.Report(Diagnostic{Kind: SyntaxError, Message: "boom"})
	assert.True(t, c.HasErrors())
	require.Len(t, c.Diagnostics, 1)
	assert.Equal(t, SyntaxError, c.Diagnostics[0].Kind)
}

func TestDiagnosticErrorIncludesKindAndMessage(t *testing.T) {
	d := Diagnostic{Kind: TypeMismatch, Message: "expected Int, got Real"}
	assert.Contains(t, d.Error(), "TypeMismatch")
	assert.Contains(t, d.Error(), "expected Int, got Real")
}

func TestCollectorFormatRendersEveryDiagnostic(t *testing.T) {
	src := source.New("test.dw", "echo 1 +\necho 2")
	c := &Collector{}
	c.Report(Diagnostic{Kind: SyntaxError, Location: source.Location{Line: 0, Col: 8}, Message: "unexpected end of line"})
	c.Report(Diagnostic{Kind: SyntaxError, Location: source.Location{Line: 1, Col: 0}, Message: "second problem"})

	out := c.Format(src)
	assert.Contains(t, out, "unexpected end of line")
	assert.Contains(t, out, "second problem")
}

func TestSuggestNameFindsCloseMatches(t *testing.T) {
	candidates := []string{"count", "counter", "total", "index"}
	suggestion := SuggestName("cont", candidates)
	assert.Contains(t, suggestion, "did you mean")
}

func TestSuggestNameEmptyForNoCandidates(t *testing.T) {
	assert.Equal(t, "", SuggestName("coutn", nil))
}
