// Package types defines every cross-package data structure used by the llmctx CLI.
package types

const (
	CommandGenerate = "generate"
	CommandPreview  = "preview"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

// ExclusionReason labels why the scanner rejected a path.
type ExclusionReason string

const (
	ReasonIgnoredByPattern ExclusionReason = "ignored by pattern"
	ReasonDirectory        ExclusionReason = "directory"
	ReasonExceedsMaxSize   ExclusionReason = "exceeds max size"
	ReasonEmptyFile        ExclusionReason = "empty file"
	ReasonAccessError      ExclusionReason = "access error"
	ReasonLikelyBinary     ExclusionReason = "likely binary"
	ReasonReadError        ExclusionReason = "read error"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// ExclusionRecord captures one rejected path together with the reason for
// the rejection. Records feed the pre-write report only; nothing downstream
// consumes them.
type ExclusionRecord struct {
	RelativePath string          `json:"path"`
	Reason       ExclusionReason `json:"reason"`
	Detail       string          `json:"detail,omitempty"`
}

// ScanResult is the complete outcome of one directory scan.
type ScanResult struct {
	Included     []string          `json:"included"`
	Excluded     []ExclusionRecord `json:"excluded"`
	FilesVisited int               `json:"filesVisited"`
}

// TreeNode is one directory level of the rendered project tree. Directory
// children recurse; file children are leaf names only.
type TreeNode struct {
	Directories map[string]*TreeNode `json:"directories,omitempty"`
	Files       []string             `json:"files,omitempty"`
}

// DocumentStats captures aggregate information about a written context document.
type DocumentStats struct {
	FilesWritten int    `json:"filesWritten"`
	ErrorMarkers int    `json:"errorMarkers,omitempty"`
	BytesWritten int64  `json:"bytesWritten"`
	TotalTokens  int    `json:"totalTokens,omitempty"`
	Model        string `json:"model,omitempty"`
}
