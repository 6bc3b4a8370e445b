package openapi

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-openapi/spec"
)

// Change kinds reported by Compare.
const (
	RemovedPath      = "removed-path"
	RemovedOperation = "removed-operation"
	RemovedResponse  = "removed-response"
)

// Change is one backward-incompatible difference between two documents.
type Change struct {
	Kind   string `json:"kind" yaml:"kind"`
	Path   string `json:"path" yaml:"path"`
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

func (c Change) String() string {
	switch c.Kind {
	case RemovedPath:
		return fmt.Sprintf("path %s was removed", c.Path)
	case RemovedOperation:
		return fmt.Sprintf("operation %s %s was removed", c.Method, c.Path)
	default:
		return fmt.Sprintf("response %s of %s %s was removed", c.Status, c.Method, c.Path)
	}
}

// Compare lists what revision removed relative to base: paths, operations and
// documented response codes. Additions are compatible and not reported.
func Compare(base, revision *spec.Swagger) []Change {
	var changes []Change
	basePaths := pathsOf(base)
	revPaths := pathsOf(revision)

	for _, path := range sortedKeys(basePaths) {
		revItem, ok := revPaths[path]
		if !ok {
			changes = append(changes, Change{Kind: RemovedPath, Path: path})
			continue
		}
		revOps := operations(revItem)
		for _, bo := range namedOperations(basePaths[path]) {
			ro, ok := revOps[bo.method]
			if !ok {
				changes = append(changes, Change{Kind: RemovedOperation, Path: path, Method: bo.method})
				continue
			}
			revCodes := responseCodes(ro)
			for _, code := range sortedCodes(responseCodes(bo.op)) {
				if !revCodes[code] {
					changes = append(changes, Change{
						Kind: RemovedResponse, Path: path, Method: bo.method, Status: code,
					})
				}
			}
		}
	}
	return changes
}

type namedOp struct {
	method string
	op     *spec.Operation
}

func pathsOf(doc *spec.Swagger) map[string]spec.PathItem {
	if doc == nil || doc.Paths == nil {
		return map[string]spec.PathItem{}
	}
	return doc.Paths.Paths
}

func namedOperations(item spec.PathItem) []namedOp {
	all := []namedOp{
		{"GET", item.Get}, {"POST", item.Post}, {"PUT", item.Put}, {"PATCH", item.Patch},
		{"DELETE", item.Delete}, {"HEAD", item.Head}, {"OPTIONS", item.Options},
	}
	ops := all[:0]
	for _, o := range all {
		if o.op != nil {
			ops = append(ops, o)
		}
	}
	return ops
}

func operations(item spec.PathItem) map[string]*spec.Operation {
	ops := map[string]*spec.Operation{}
	for _, o := range namedOperations(item) {
		ops[o.method] = o.op
	}
	return ops
}

func responseCodes(op *spec.Operation) map[string]bool {
	codes := map[string]bool{}
	if op.Responses == nil {
		return codes
	}
	if op.Responses.Default != nil {
		codes["default"] = true
	}
	for code := range op.Responses.StatusCodeResponses {
		codes[strconv.Itoa(code)] = true
	}
	return codes
}

func sortedKeys(m map[string]spec.PathItem) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCodes(m map[string]bool) []string {
	codes := make([]string, 0, len(m))
	for k := range m {
		codes = append(codes, k)
	}
	sort.Strings(codes)
	return codes
}
