package launch

import "strings"

// Options is the launch configuration resolved once from the process arguments.
// A nil field means the option was not given.
type Options struct {
	FilePath       *string `json:"filePath" yaml:"filePath"`
	BundleDir      *string `json:"bundleDir" yaml:"bundleDir"`
	PrinciplesPath *string `json:"principlesPath" yaml:"principlesPath"`
	OutPath        *string `json:"outPath" yaml:"outPath"`
}

// openCommand marks the positional that precedes the document path ("app open <path>").
const openCommand = "open"

// Resolve parses a raw argument vector (args[0] is the program name) into Options.
// It never fails: unknown flags are skipped and incomplete flags are dropped.
func Resolve(args []string) Options {
	var opts Options
	var positionals []string

	for i := 1; i < len(args); i++ {
		arg := args[i]
		if field := opts.valueFlag(arg); field != nil {
			if i+1 < len(args) {
				*field = ptr(args[i+1])
				i++
			}
			continue
		}
		if field, value, ok := opts.inlineFlag(arg); ok {
			*field = ptr(value)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		positionals = append(positionals, arg)
	}

	opts.FilePath = filePathFrom(positionals)
	return opts
}

// valueFlag returns the field a space-separated flag writes to, or nil.
func (o *Options) valueFlag(arg string) **string {
	switch arg {
	case "--bundle-dir":
		return &o.BundleDir
	case "--principles":
		return &o.PrinciplesPath
	case "--out":
		return &o.OutPath
	}
	return nil
}

// inlineFlag handles the --flag=value form.
func (o *Options) inlineFlag(arg string) (**string, string, bool) {
	if v, ok := strings.CutPrefix(arg, "--bundle-dir="); ok {
		return &o.BundleDir, v, true
	}
	if v, ok := strings.CutPrefix(arg, "--principles="); ok {
		return &o.PrinciplesPath, v, true
	}
	if v, ok := strings.CutPrefix(arg, "--out="); ok {
		return &o.OutPath, v, true
	}
	return nil, "", false
}

// filePathFrom applies the document path policy: the token after the first
// "open" wins, even when nothing follows it; otherwise the first positional.
func filePathFrom(positionals []string) *string {
	for i, p := range positionals {
		if p != openCommand {
			continue
		}
		if i+1 < len(positionals) {
			return ptr(positionals[i+1])
		}
		return nil
	}
	if len(positionals) > 0 {
		return ptr(positionals[0])
	}
	return nil
}

// Clone returns a deep copy so callers cannot reach the stored values.
func (o Options) Clone() Options {
	return Options{
		FilePath:       clonePtr(o.FilePath),
		BundleDir:      clonePtr(o.BundleDir),
		PrinciplesPath: clonePtr(o.PrinciplesPath),
		OutPath:        clonePtr(o.OutPath),
	}
}

func ptr(s string) *string { return &s }

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
