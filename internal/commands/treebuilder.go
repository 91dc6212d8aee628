package commands

import (
	"sort"
	"strings"

	"llmctx/internal/types"
)

// BuildFileTree arranges included relative paths into a nested directory
// tree. Intermediate directories are created on demand; the final segment of
// each path lands in its parent's Files list.
func BuildFileTree(includedPaths []string) *types.TreeNode {
	rootNode := newTreeNode()
	for _, relativePath := range includedPaths {
		segments := strings.Split(relativePath, patternPathSeparator)
		currentNode := rootNode
		for segmentIndex, segment := range segments {
			if segmentIndex == len(segments)-1 {
				currentNode.Files = append(currentNode.Files, segment)
				continue
			}
			childNode, exists := currentNode.Directories[segment]
			if !exists {
				childNode = newTreeNode()
				currentNode.Directories[segment] = childNode
			}
			currentNode = childNode
		}
	}
	sortTreeFiles(rootNode)
	return rootNode
}

func newTreeNode() *types.TreeNode {
	return &types.TreeNode{Directories: map[string]*types.TreeNode{}}
}

// sortTreeFiles orders every Files slice so rendering is deterministic.
func sortTreeFiles(node *types.TreeNode) {
	sort.Strings(node.Files)
	for _, childNode := range node.Directories {
		sortTreeFiles(childNode)
	}
}
