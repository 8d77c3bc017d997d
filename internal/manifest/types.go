package manifest

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
)

// Target is the vendor toolchain a manifest is written for
type Target string

// Supported targets
const (
	TargetXilinx    Target = "xilinx"
	TargetAltera    Target = "altera"
	TargetLattice   Target = "lattice"
	TargetMicrosemi Target = "microsemi"
)

// Targets lists every supported target in a stable order
var Targets = []Target{TargetXilinx, TargetAltera, TargetLattice, TargetMicrosemi}

// Valid reports whether t is a supported target
func (t Target) Valid() bool {
	return slices.Contains(Targets, t)
}

// Action is the toolchain step a manifest describes
type Action string

// Supported actions
const (
	ActionSynthesis  Action = "synthesis"
	ActionSimulation Action = "simulation"
)

// Actions lists every supported action in a stable order
var Actions = []Action{ActionSynthesis, ActionSimulation}

// Valid reports whether a is a supported action
func (a Action) Valid() bool {
	return slices.Contains(Actions, a)
}

// Manifest keys, in declaration order
const (
	KeyTarget     = "target"
	KeyAction     = "action"
	KeyModules    = "modules"
	KeySynDevice  = "syn_device"
	KeySynGrade   = "syn_grade"
	KeySynPackage = "syn_package"
	KeySynTop     = "syn_top"
	KeySynProject = "syn_project"
	KeySynTool    = "syn_tool"
	KeyFiles      = "files"
	KeyFetchTo    = "fetchto"
)

// fieldOrder fixes the order in which keys are validated and rendered
var fieldOrder = []string{
	KeyTarget, KeyAction, KeyModules,
	KeySynDevice, KeySynGrade, KeySynPackage, KeySynTop, KeySynProject, KeySynTool,
	KeyFiles, KeyFetchTo,
}

var requiredFields = map[string]bool{
	KeyTarget:     true,
	KeyAction:     true,
	KeySynDevice:  true,
	KeySynGrade:   true,
	KeySynPackage: true,
	KeySynTop:     true,
	KeySynProject: true,
	KeyFiles:      true,
	KeyFetchTo:    true,
}

// IsKnownField reports whether key is a manifest key
func IsKnownField(key string) bool {
	return slices.Contains(fieldOrder, key)
}

// IsRequiredField reports whether key must be present in every manifest
func IsRequiredField(key string) bool {
	return requiredFields[key]
}

// Manifest is a validated synthesis manifest. It is never modified after
// loading; accessors return copies of slices and maps.
type Manifest struct {
	target     Target
	action     Action
	modules    map[string][]string
	synDevice  string
	synGrade   string
	synPackage string
	synTop     string
	synProject string
	synTool    string
	files      []string
	fetchTo    string
	dir        string
}

// Target returns the vendor toolchain
func (m *Manifest) Target() Target { return m.target }

// Action returns the toolchain step
func (m *Manifest) Action() Action { return m.action }

// SynDevice returns the vendor part number
func (m *Manifest) SynDevice() string { return m.synDevice }

// SynGrade returns the speed grade
func (m *Manifest) SynGrade() string { return m.synGrade }

// SynPackage returns the package code
func (m *Manifest) SynPackage() string { return m.synPackage }

// SynTop returns the top-level module name. It is not checked against sources.
func (m *Manifest) SynTop() string { return m.synTop }

// SynProject returns the project file name
func (m *Manifest) SynProject() string { return m.synProject }

// SynTool returns the optional tool name, empty when unset
func (m *Manifest) SynTool() string { return m.synTool }

// FetchTo returns the IP core fetch directory as written
func (m *Manifest) FetchTo() string { return m.fetchTo }

// Dir returns the directory all relative paths are resolved against
func (m *Manifest) Dir() string { return m.dir }

// Files returns the source files as written, in order
func (m *Manifest) Files() []string {
	return slices.Clone(m.files)
}

// Modules returns the module search map as written
func (m *Manifest) Modules() map[string][]string {
	out := make(map[string][]string, len(m.modules))
	for name, paths := range m.modules {
		out[name] = slices.Clone(paths)
	}
	return out
}

// ModuleNames returns the module keys in sorted order
func (m *Manifest) ModuleNames() []string {
	names := make([]string, 0, len(m.modules))
	for name := range m.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvedFiles returns the source files joined with Dir. The filesystem is not consulted.
func (m *Manifest) ResolvedFiles() []string {
	out := make([]string, len(m.files))
	for i, f := range m.files {
		out[i] = m.resolve(f)
	}
	return out
}

// ResolvedFetchTo returns the fetch directory joined with Dir
func (m *Manifest) ResolvedFetchTo() string {
	return m.resolve(m.fetchTo)
}

// ResolvedModules returns the module map with every path joined with Dir
func (m *Manifest) ResolvedModules() map[string][]string {
	out := make(map[string][]string, len(m.modules))
	for name, paths := range m.modules {
		resolved := make([]string, len(paths))
		for i, p := range paths {
			resolved[i] = m.resolve(p)
		}
		out[name] = resolved
	}
	return out
}

func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.dir, filepath.FromSlash(p))
}

// Equal reports whether two manifests carry the same values
func (m *Manifest) Equal(other *Manifest) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.target != other.target || m.action != other.action ||
		m.synDevice != other.synDevice || m.synGrade != other.synGrade ||
		m.synPackage != other.synPackage || m.synTop != other.synTop ||
		m.synProject != other.synProject || m.synTool != other.synTool ||
		m.fetchTo != other.fetchTo || m.dir != other.dir {
		return false
	}
	if !slices.Equal(m.files, other.files) || len(m.modules) != len(other.modules) {
		return false
	}
	for name, paths := range m.modules {
		otherPaths, ok := other.modules[name]
		if !ok || !slices.Equal(paths, otherPaths) {
			return false
		}
	}
	return true
}

// Field is one rendered key-value pair
type Field struct {
	Key   string
	Value string
}

// Fields returns the scalar fields in declaration order, followed by one entry
// per module path and per file. Unset optional fields are omitted.
func (m *Manifest) Fields() []Field {
	var fields []Field
	add := func(key, value string) {
		fields = append(fields, Field{Key: key, Value: value})
	}

	add(KeyTarget, string(m.target))
	add(KeyAction, string(m.action))
	for _, name := range m.ModuleNames() {
		for _, p := range m.modules[name] {
			add(KeyModules, name+":"+p)
		}
	}
	add(KeySynDevice, m.synDevice)
	add(KeySynGrade, m.synGrade)
	add(KeySynPackage, m.synPackage)
	add(KeySynTop, m.synTop)
	add(KeySynProject, m.synProject)
	if m.synTool != "" {
		add(KeySynTool, m.synTool)
	}
	for _, f := range m.files {
		add(KeyFiles, f)
	}
	add(KeyFetchTo, m.fetchTo)
	return fields
}

// ToolArgs renders the manifest as key=value arguments for an external
// toolchain invocation. Paths are resolved against Dir.
func (m *Manifest) ToolArgs() []string {
	args := []string{
		fmt.Sprintf("%s=%s", KeyTarget, m.target),
		fmt.Sprintf("%s=%s", KeyAction, m.action),
		fmt.Sprintf("%s=%s", KeySynDevice, m.synDevice),
		fmt.Sprintf("%s=%s", KeySynGrade, m.synGrade),
		fmt.Sprintf("%s=%s", KeySynPackage, m.synPackage),
		fmt.Sprintf("%s=%s", KeySynTop, m.synTop),
		fmt.Sprintf("%s=%s", KeySynProject, m.synProject),
	}
	if m.synTool != "" {
		args = append(args, fmt.Sprintf("%s=%s", KeySynTool, m.synTool))
	}
	for _, f := range m.ResolvedFiles() {
		args = append(args, fmt.Sprintf("%s=%s", KeyFiles, f))
	}
	args = append(args, fmt.Sprintf("%s=%s", KeyFetchTo, m.ResolvedFetchTo()))
	return args
}

// Document is a serializable copy of a Manifest, used for printing
type Document struct {
	Target     Target              `yaml:"target" json:"target"`
	Action     Action              `yaml:"action" json:"action"`
	Modules    map[string][]string `yaml:"modules,omitempty" json:"modules,omitempty"`
	SynDevice  string              `yaml:"syn_device" json:"syn_device"`
	SynGrade   string              `yaml:"syn_grade" json:"syn_grade"`
	SynPackage string              `yaml:"syn_package" json:"syn_package"`
	SynTop     string              `yaml:"syn_top" json:"syn_top"`
	SynProject string              `yaml:"syn_project" json:"syn_project"`
	SynTool    string              `yaml:"syn_tool,omitempty" json:"syn_tool,omitempty"`
	Files      []string            `yaml:"files" json:"files"`
	FetchTo    string              `yaml:"fetchto" json:"fetchto"`
}

// Document returns a serializable copy of the manifest
func (m *Manifest) Document() Document {
	doc := Document{
		Target:     m.target,
		Action:     m.action,
		SynDevice:  m.synDevice,
		SynGrade:   m.synGrade,
		SynPackage: m.synPackage,
		SynTop:     m.synTop,
		SynProject: m.synProject,
		SynTool:    m.synTool,
		Files:      m.Files(),
		FetchTo:    m.fetchTo,
	}
	if len(m.modules) > 0 {
		doc.Modules = m.Modules()
	}
	return doc
}
