package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/quantmind-br/hdlmanifest/internal/utils"
)

// Loader loads and validates manifest files. A Loader is not modified after
// NewLoader returns and may be shared between goroutines.
type Loader struct {
	strict   bool
	logger   *utils.Logger
	decoders map[string]Decoder
}

// Option configures a Loader
type Option func(*Loader)

// WithStrict makes the loader reject unknown keys instead of ignoring them
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *utils.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger.WithComponent("manifest")
		}
	}
}

// WithDecoder registers a decoder for a file extension, replacing any default
func WithDecoder(ext string, dec Decoder) Option {
	return func(l *Loader) {
		l.decoders[strings.ToLower(ext)] = dec
	}
}

// NewLoader creates a new manifest loader
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		logger:   utils.NewNopLogger(),
		decoders: defaultDecoders(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Strict reports whether unknown keys are rejected
func (l *Loader) Strict() bool {
	return l.strict
}

// Load reads and validates the manifest at path. Relative paths in the
// manifest are resolved against the directory containing path.
func (l *Loader) Load(path string) (*Manifest, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest directory: %w", err)
	}

	l.logger.WithManifest(path).Debug().Str("dir", dir).Msg("Loading manifest")

	return l.load(data, filepath.Base(path), filepath.Ext(path), dir)
}

// LoadFromBytes parses manifest content without reading any file. dir is the
// directory relative paths are resolved against; a relative dir is made
// absolute against the working directory.
func (l *Loader) LoadFromBytes(data []byte, ext, dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest directory: %w", err)
	}
	return l.load(data, "manifest"+ext, ext, abs)
}

func (l *Loader) load(data []byte, filename, ext, dir string) (*Manifest, error) {
	ext = strings.ToLower(ext)

	dec, ok := l.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	raw, err := dec.Decode(data, filename)
	if err != nil {
		return nil, err
	}

	l.logger.Debug().
		Str("ext", ext).
		Int("keys", len(raw)).
		Msg("Decoded manifest")

	return l.build(raw, dir)
}

// build validates raw assignments and produces the record. Keys are checked
// in declaration order so the first reported problem is deterministic.
func (l *Loader) build(raw map[string]any, dir string) (*Manifest, error) {
	if err := l.checkUnknown(raw); err != nil {
		return nil, err
	}

	m := &Manifest{dir: dir, modules: map[string][]string{}}

	for _, key := range fieldOrder {
		v, present := raw[key]
		if !present || v == nil {
			if requiredFields[key] {
				return nil, &MissingFieldError{Field: key}
			}
			continue
		}

		var err error
		switch key {
		case KeyTarget:
			err = setEnum(key, v, &m.target, Target.Valid, targetNames())
		case KeyAction:
			err = setEnum(key, v, &m.action, Action.Valid, actionNames())
		case KeyModules:
			m.modules, err = asModules(key, v)
		case KeySynDevice:
			m.synDevice, err = asNonEmptyString(key, v)
		case KeySynGrade:
			m.synGrade, err = asNonEmptyString(key, v)
		case KeySynPackage:
			m.synPackage, err = asNonEmptyString(key, v)
		case KeySynTop:
			m.synTop, err = asNonEmptyString(key, v)
		case KeySynProject:
			m.synProject, err = asNonEmptyString(key, v)
		case KeySynTool:
			m.synTool, err = asString(key, v)
		case KeyFiles:
			m.files, err = asPathList(key, v)
		case KeyFetchTo:
			m.fetchTo, err = asNonEmptyString(key, v)
		}
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (l *Loader) checkUnknown(raw map[string]any) error {
	var unknown []string
	for key := range raw {
		if !IsKnownField(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)

	if l.strict {
		return fmt.Errorf("%w: %s", ErrUnknownField, unknown[0])
	}
	l.logger.Debug().Strs("keys", unknown).Msg("Ignoring unknown manifest keys")
	return nil
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Field: key, Want: "a string", Got: describe(v)}
	}
	return s, nil
}

func asNonEmptyString(key string, v any) (string, error) {
	s, err := asString(key, v)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", &ValueError{Field: key, Reason: "must not be empty"}
	}
	return s, nil
}

func setEnum[T ~string](key string, v any, dst *T, valid func(T) bool, names []string) error {
	s, err := asString(key, v)
	if err != nil {
		return err
	}
	if !valid(T(s)) {
		return &ValueError{Field: key, Value: s, Reason: "is not one of " + strings.Join(names, ", ")}
	}
	*dst = T(s)
	return nil
}

// asPathList accepts only a list of non-blank strings
func asPathList(key string, v any) ([]string, error) {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for i, elem := range val {
			s, ok := elem.(string)
			if !ok {
				return nil, &TypeError{Field: fmt.Sprintf("%s[%d]", key, i), Want: "a string", Got: describe(elem)}
			}
			if strings.TrimSpace(s) == "" {
				return nil, &ValueError{Field: fmt.Sprintf("%s[%d]", key, i), Value: s, Reason: "must not be empty"}
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return append([]string(nil), val...), nil
	}
	return nil, &TypeError{Field: key, Want: "a list of strings", Got: describe(v)}
}

// asModules accepts a mapping whose values are a path or a list of paths
func asModules(key string, v any) (map[string][]string, error) {
	mapping, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Field: key, Want: "a mapping of name to paths", Got: describe(v)}
	}
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string][]string, len(mapping))
	for _, name := range names {
		list, err := asModulePaths(fmt.Sprintf("%s.%s", key, name), mapping[name])
		if err != nil {
			return nil, err
		}
		out[name] = list
	}
	return out, nil
}

// asModulePaths accepts a single path or a list of paths
func asModulePaths(key string, v any) ([]string, error) {
	p, ok := v.(string)
	if !ok {
		return asPathList(key, v)
	}
	if strings.TrimSpace(p) == "" {
		return nil, &ValueError{Field: key, Value: p, Reason: "must not be empty"}
	}
	return []string{p}, nil
}

func targetNames() []string {
	names := make([]string, len(Targets))
	for i, t := range Targets {
		names[i] = string(t)
	}
	return names
}

func actionNames() []string {
	names := make([]string, len(Actions))
	for i, a := range Actions {
		names[i] = string(a)
	}
	return names
}
