package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/specialistvlad/jessc/internal/args"
	"github.com/specialistvlad/jessc/internal/ctxlog"
	"github.com/specialistvlad/jessc/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	ErrUsage  = errors.New("env expects a variable name and an optional options object")
	ErrNotSet = errors.New("env variable is not set")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options is the optional second argument of jess.env.
type Options struct {
	// Default is used when the variable is unset.
	Default *string
	// Raw inserts the value as is instead of as a quoted string literal.
	Raw bool
}

// OnEnv replaces jess.env('NAME'[, {default = "...", raw = true}]); with the
// value of the environment variable, quoted as a string literal unless raw.
func OnEnv(ctx context.Context, call *registry.Call) (string, error) {
	if len(call.Args) == 0 || len(call.Args) > 2 || !call.Args[0].IsString() {
		return "", ErrUsage
	}
	name := call.Args[0].Text

	var opts Options
	if len(call.Args) == 2 {
		parsed, err := decodeOptions(call.Args[1])
		if err != nil {
			return "", err
		}
		opts = parsed
	}

	value, ok := os.LookupEnv(name)
	if !ok {
		if opts.Default == nil {
			return "", fmt.Errorf("%w: %q", ErrNotSet, name)
		}
		value = *opts.Default
	}
	ctxlog.FromContext(ctx).Debug("Environment value inlined.", "name", name, "from_env", ok)

	if opts.Raw {
		return value, nil
	}
	return strconv.Quote(value), nil
}

// decodeOptions accepts an object whose attribute values are all convertible
// to strings, so {raw = true} and {raw = "true"} are equivalent.
func decodeOptions(arg args.Argument) (Options, error) {
	if !arg.IsObject() {
		return Options{}, fmt.Errorf("%w: options must be an object, got %s", ErrUsage, arg.Raw)
	}

	strMap, err := convert.Convert(arg.Object, cty.Map(cty.String))
	if err != nil {
		return Options{}, fmt.Errorf("invalid env options %s: %w", arg.Raw, err)
	}
	var raw map[string]string
	if err := gocty.FromCtyValue(strMap, &raw); err != nil {
		return Options{}, fmt.Errorf("invalid env options %s: %w", arg.Raw, err)
	}

	var opts Options
	for key, val := range raw {
		switch key {
		case "default":
			v := val
			opts.Default = &v
		case "raw":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return Options{}, fmt.Errorf("invalid env option raw=%q: %w", val, err)
			}
			opts.Raw = b
		default:
			return Options{}, fmt.Errorf("unsupported env option %q", key)
		}
	}
	return opts, nil
}

// Register registers the handler with the compiler.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("env", OnEnv)
}
