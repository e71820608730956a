package sdsc

import (
	"strings"

	"github.com/yaklabco/cppdoc/pkg/fence"
)

// Register installs a handler for sdsc fences that renders the grammar
// with RenderBlock. A block that fails to parse fails the render.
func Register(d *fence.Dispatcher) {
	d.RegisterLang("sdsc", renderFence)
}

func renderFence(blk *fence.Block, _ fence.Renderer) (string, bool, error) {
	nodes, err := Parse(strings.TrimSuffix(blk.Content, "\n"))
	if err != nil {
		return "", false, err
	}
	return RenderBlock(nodes), true, nil
}
