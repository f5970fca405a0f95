package streetmap

import "fmt"

// DanglingRefError reports a kept way referencing a node the document
// never declared. A graph cannot be built from such input.
type DanglingRefError struct {
	WayID  int64
	NodeID int64
}

func (e *DanglingRefError) Error() string {
	return fmt.Sprintf("streetmap: way %d references unknown node %d", e.WayID, e.NodeID)
}
