package sim

import "fmt"

// Bindings resolves physical key names to actions.
type Bindings struct {
	keys map[string]Action
}

// NewBindings builds a resolver from an action-name to key-names map. A key
// bound to more than one action resolves to the action declared first.
func NewBindings(m map[string][]string) (*Bindings, error) {
	b := &Bindings{keys: make(map[string]Action)}
	for _, a := range Actions() {
		for _, k := range m[a.String()] {
			if _, taken := b.keys[k]; !taken {
				b.keys[k] = a
			}
		}
	}
	for name := range m {
		if _, ok := ParseAction(name); !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
	}
	return b, nil
}

func (b *Bindings) Resolve(key string) (Action, bool) {
	if b == nil {
		return ActionNone, false
	}
	a, ok := b.keys[key]
	return a, ok
}

// KeyState tracks which held actions are down, plus the order directional
// actions were pressed in.
type KeyState struct {
	down [actionCount]bool
	dirs []Action
}

// Press marks a down. It reports whether the action was previously up.
func (k *KeyState) Press(a Action) bool {
	if a >= actionCount || k.down[a] {
		return false
	}
	k.down[a] = true
	if a.Directional() {
		k.dirs = append(k.dirs, a)
	}
	return true
}

func (k *KeyState) Release(a Action) {
	if a >= actionCount {
		return
	}
	k.down[a] = false
	if a.Directional() {
		for i, d := range k.dirs {
			if d == a {
				k.dirs = append(k.dirs[:i], k.dirs[i+1:]...)
				break
			}
		}
	}
}

func (k *KeyState) Down(a Action) bool {
	return a < actionCount && k.down[a]
}

// LastDirection is the most recently pressed directional action still held.
func (k *KeyState) LastDirection() (Action, bool) {
	if len(k.dirs) == 0 {
		return ActionNone, false
	}
	return k.dirs[len(k.dirs)-1], true
}

// Reset releases everything, e.g. when the window loses focus.
func (k *KeyState) Reset() {
	*k = KeyState{}
}
