package utils

import (
	"io"
	"os"
)

// sniffLength defines the number of bytes read when probing file content.
const sniffLength = 1024

// IsBinary reports whether the provided byte slice appears to contain binary
// data. A null byte anywhere in the sample counts as binary.
func IsBinary(data []byte) bool {
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}

// SniffFile reads up to sniffLength bytes from the file at filePath and
// returns them. The sample feeds both the binary probe and content-type
// detection without the file being opened twice.
func SniffFile(filePath string) ([]byte, error) {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return nil, readError
	}
	return buffer[:bytesRead], nil
}
