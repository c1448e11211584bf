package autoupdate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"pgregory.net/rapid"
)

func TestOrderedKeys_LongestFirst(t *testing.T) {
	keys := orderedKeys(map[string]string{"a": "", "ccc": "", "bb": "", "dd": ""})
	assert.Equal(t, []string{"ccc", "bb", "dd", "a"}, keys)
}

func TestApply_Alternatives(t *testing.T) {
	repl := map[string]string{"Old": `New A", "New B`}
	got := apply(`["Old", "x <Old>"]`, orderedKeys(repl), repl)
	assert.Equal(t, `["New A", "New B", "x <Old>"]`, got)
}

func TestApply_LeavesUnrelatedBytes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		content := rapid.StringMatching(`[a-z {}:,\[\]]{0,60}`).Draw(rt, "content")
		repl := map[string]string{"Unhappy": "[-1] Happiness"}
		assert.Equal(rt, content, apply(content, orderedKeys(repl), repl))
	})
}

func TestApply_EscapedTexts(t *testing.T) {
	repl := map[string]string{
		`Say "hi"`:   `Say "bye"`,
		`back\slash`: `front/slash`,
	}
	content := `["Say \"hi\"", "[+1] Movement <back\\slash>"]`
	got := apply(content, orderedKeys(repl), repl)
	assert.Equal(t, `["Say \"bye\"", "[+1] Movement <front/slash>"]`, got)
	assert.True(t, gjson.Valid(got))
}

func TestApply_OutputStaysValidJSON(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		from := rapid.StringMatching(`[a-z"\\]{1,8}`).Draw(rt, "from")
		to := rapid.StringMatching(`[A-Z"\\ ]{0,8}`).Draw(rt, "to")
		data, err := json.Marshal([]string{from, "KEEP"})
		require.NoError(rt, err)

		repl := map[string]string{from: to}
		got := apply(string(data), orderedKeys(repl), repl)
		require.True(rt, gjson.Valid(got), got)
		assert.Equal(rt, to, gjson.Get(got, "0").String())
		assert.Equal(rt, "KEEP", gjson.Get(got, "1").String())
	})
}
