package cli

import (
	"sort"
	"strings"
)

// ParseKeyValues turns "k1=v1,k2=v2" into a map. Each comma-separated segment
// is split on its first '='; segments without '=' are dropped and a repeated
// key keeps its last value. There is no trimming and no way to escape ',' or
// '=' inside a value. It never fails.
func ParseKeyValues(raw string) map[string]string {
	out := make(map[string]string)
	for _, segment := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		out[key] = value
	}
	return out
}

// KeyValueFlag adapts ParseKeyValues to pflag.Value.
type KeyValueFlag struct {
	values map[string]string
}

func (f *KeyValueFlag) Set(raw string) error {
	f.values = ParseKeyValues(raw)
	return nil
}

func (f *KeyValueFlag) Type() string {
	return "k=v,..."
}

func (f *KeyValueFlag) String() string {
	if len(f.values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+f.values[k])
	}
	return strings.Join(pairs, ",")
}

// Values returns the parsed map; nil when Set was never called.
func (f *KeyValueFlag) Values() map[string]string {
	return f.values
}
