package share

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	path         string
	expectingKey bool
	key          string // last key seen in an object frame
	index        int    // next element index in an array frame
	keys         map[string]struct{}
}

// DetectJSONDuplicateKeys walks the token stream of data and reports every
// repeated object key as a duplicate_key issue. maxIssues <= 0 means no limit.
func DetectJSONDuplicateKeys(data []byte, maxIssues int) (Issues, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		stack []*dupFrame
		iss   Issues
	)
	// childPath returns the pointer of the value about to be read.
	childPath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := stack[len(stack)-1]
		if top.kind == kindObject {
			return top.path + "/" + EscapePointer(top.key)
		}
		p := top.path + "/" + strconv.Itoa(top.index)
		top.index++
		return p
	}
	// valueDone flips the parent object back to key-expecting state.
	valueDone := func() {
		if n := len(stack); n > 0 && stack[n-1].kind == kindObject {
			stack[n-1].expectingKey = true
		}
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return iss, nil
		}
		if err != nil {
			return iss, err
		}
		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{':
				p := childPath()
				stack = append(stack, &dupFrame{kind: kindObject, path: p, expectingKey: true, keys: map[string]struct{}{}})
			case '[':
				p := childPath()
				stack = append(stack, &dupFrame{kind: kindArray, path: p})
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 {
				top := stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					top.expectingKey = false
					top.key = v
					if _, dup := top.keys[v]; dup {
						p := top.path + "/" + EscapePointer(v)
						iss = AppendIssues(iss, NewIssue(p, CodeDuplicateKey, "unique keys", v))
						if maxIssues > 0 && len(iss) >= maxIssues {
							return iss, nil
						}
					}
					top.keys[v] = struct{}{}
					continue
				}
			}
			childPath()
			valueDone()
		default:
			childPath()
			valueDone()
		}
	}
}
