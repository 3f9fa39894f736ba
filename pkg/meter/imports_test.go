package meter

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/gonewx/angrymeter/"

// TestImportGraph_NoRenderer 引擎及其依赖的本模块包都不能引入 ebiten
func TestImportGraph_NoRenderer(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	seen := map[string]bool{}
	queue := []string{"pkg/meter"}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]
		if seen[dir] {
			continue
		}
		seen[dir] = true

		entries, err := os.ReadDir(filepath.Join(root, dir))
		require.NoError(t, err)
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}
			f, err := parser.ParseFile(token.NewFileSet(), filepath.Join(root, dir, name), nil, parser.ImportsOnly)
			require.NoError(t, err)
			for _, imp := range f.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				require.NoError(t, err)
				assert.NotContains(t, path, "hajimehoshi/ebiten", "%s/%s", dir, name)
				if rest, ok := strings.CutPrefix(path, modulePath); ok {
					queue = append(queue, rest)
				}
			}
		}
	}
	assert.True(t, seen["pkg/utils"], "引擎应依赖 pkg/utils 的缓动曲线")
}
