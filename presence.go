package share

import (
	"strings"
	"sync"
)

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries the parsed value along with presence metadata and any
// warnings the Source reported.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
	Warnings Issues
}

// Seen reports whether path appeared in the input (null included).
func (pm PresenceMap) Seen(path string) bool { return pm[path]&PresenceSeen != 0 }

// Defaulted reports whether path was filled from a declared default.
func (pm PresenceMap) Defaulted(path string) bool { return pm[path]&PresenceDefaultApplied != 0 }

// WasNull reports whether path was explicitly null in the input.
func (pm PresenceMap) WasNull(path string) bool { return pm[path]&PresenceWasNull != 0 }

// MergeUnder copies child flags into pm with paths rebased under base.
// The child's root entry maps onto base itself.
func (pm PresenceMap) MergeUnder(base string, child PresenceMap) {
	for k, v := range child {
		p := base
		if k != "/" && k != "" {
			p = base + k
		}
		pm[p] |= v
	}
}

// simple string interner for PresenceMap keys
var (
	_internMu   sync.RWMutex
	_internPool = map[string]string{}
)

func internString(s string) string {
	_internMu.RLock()
	if v, ok := _internPool[s]; ok {
		_internMu.RUnlock()
		return v
	}
	_internMu.RUnlock()

	_internMu.Lock()
	if v, ok := _internPool[s]; ok { // double-check
		_internMu.Unlock()
		return v
	}
	_internPool[s] = s
	_internMu.Unlock()
	return s
}

func applyPresenceOptions(pm PresenceMap, popt PresenceOpt, ropt PathRenderOpt) PresenceMap {
	if pm == nil || !popt.Collect {
		return nil
	}
	shouldInclude := func(path string) bool {
		if len(popt.Include) > 0 {
			ok := false
			for _, p := range popt.Include {
				if strings.HasPrefix(path, p) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		for _, p := range popt.Exclude {
			if strings.HasPrefix(path, p) {
				return false
			}
		}
		return true
	}

	filtered := make(PresenceMap, len(pm))
	for k, v := range pm {
		if !shouldInclude(k) {
			continue
		}
		key := k
		if ropt.Intern {
			key = internString(k)
		}
		filtered[key] = v
	}
	return filtered
}
