package highlight

import "github.com/alecthomas/chroma/v2"

// ioLexer tokenizes program transcripts. "¶" marks an input line, which
// ends at "↵"; everything else is program output.
var ioLexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:    "io",
		Aliases: []string{"io"},
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `(¶)([^\n↵]*↵)`, Type: chroma.ByGroups(chroma.GenericPrompt, chroma.LiteralString)},
				{Pattern: `[^¶\n]+`, Type: chroma.GenericOutput},
				{Pattern: `¶`, Type: chroma.GenericOutput},
				{Pattern: `\n`, Type: chroma.Text},
			},
		}
	},
)

// ioCSS hides the input marker of transcripts.
const ioCSS = `
.language-io .gp { display: none; }
`
