package pipeline

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// RegisterFlags adds one boolean trigger flag per pipeline to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	for _, k := range Kinds() {
		fs.Bool(string(k), false, k.Describe())
	}
}

// Selected returns the kinds whose trigger flag is set in fs.
func Selected(fs *pflag.FlagSet) []Kind {
	var kinds []Kind
	for _, k := range Kinds() {
		on, err := fs.GetBool(string(k))
		if err == nil && on {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Select builds the Command named by the trigger flags in fs. Exactly one
// trigger must be set.
func Select(fs *pflag.FlagSet, params Params) (Command, error) {
	kinds := Selected(fs)
	switch len(kinds) {
	case 0:
		return nil, &UsageError{Msg: "no pipeline selected"}
	case 1:
		return NewCommand(kinds[0], params)
	}

	flags := make([]string, len(kinds))
	for i, k := range kinds {
		flags[i] = "--" + string(k)
	}
	return nil, &UsageError{Msg: fmt.Sprintf("only one pipeline may be selected, got %s", strings.Join(flags, ", "))}
}
