package output

import (
	"sort"
	"strings"

	"llmctx/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
)

// RenderFileTree returns the tree rendering with rootLabel on the first line
// and no trailing newline. At every level directories sort before files,
// each group in lexicographic order.
func RenderFileTree(rootLabel string, rootNode *types.TreeNode) string {
	treeLines := append([]string{rootLabel}, treeNodeLines(rootNode, "")...)
	return strings.Join(treeLines, "\n")
}

// treeNodeLines renders one directory level and recurses into its children.
func treeNodeLines(node *types.TreeNode, prefix string) []string {
	if node == nil {
		return nil
	}

	directoryNames := make([]string, 0, len(node.Directories))
	for directoryName := range node.Directories {
		directoryNames = append(directoryNames, directoryName)
	}
	sort.Strings(directoryNames)

	totalEntries := len(directoryNames) + len(node.Files)
	var lines []string

	for directoryIndex, directoryName := range directoryNames {
		isLastEntry := directoryIndex == totalEntries-1
		connector := treeBranchConnector
		childPadding := treeBranchPadding
		if isLastEntry {
			connector = treeLastConnector
			childPadding = treeLastPadding
		}
		lines = append(lines, prefix+connector+directoryName)
		lines = append(lines, treeNodeLines(node.Directories[directoryName], prefix+childPadding)...)
	}

	for fileIndex, fileName := range node.Files {
		connector := treeBranchConnector
		if len(directoryNames)+fileIndex == totalEntries-1 {
			connector = treeLastConnector
		}
		lines = append(lines, prefix+connector+fileName)
	}

	return lines
}
