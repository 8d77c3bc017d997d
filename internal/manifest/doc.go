// Package manifest loads and validates FPGA synthesis manifests. A manifest
// declares the target toolchain, the device (part number, speed grade and
// package), the top-level module, the project file name, the ordered list of
// source files and the directory fetched IP cores are placed in.
//
// # Manifest Format
//
// The native format is one assignment per key, as written by hdlmake:
//
//	target = "xilinx"
//	action = "synthesis"
//
//	modules = {"local" : "../"}
//
//	syn_device = "xc6slx45t"
//	syn_grade = "-3"
//	syn_package = "fgg484"
//	syn_top = "yarr"
//	syn_project = "yarr_spec.xise"
//
//	files = ["../yarr_spec.ucf",
//	         "../top_yarr_spec.vhd"]
//
//	fetchto = "../ip_cores"
//
// Files ending in .py, .hcl or .manifest, or with no extension, use this
// syntax. The same keys may also be written as YAML (.yaml, .yml), JSON
// (.json) or TOML (.toml).
//
// # Usage
//
//	loader := manifest.NewLoader(manifest.WithStrict(true))
//	m, err := loader.Load("hdl/syn/Manifest.py")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, src := range m.ResolvedFiles() {
//	    // Hand each source to the toolchain
//	}
//
// Paths in a manifest are relative to the manifest's directory, never to the
// working directory. The loader does not check that they exist.
//
// # Error Handling
//
// Every failure is returned immediately and no partial record is produced:
//   - ErrFileNotFound: manifest file does not exist
//   - ErrMissingField: a required key is absent (*MissingFieldError)
//   - ErrInvalidType: a value has the wrong shape (*TypeError)
//   - ErrInvalidValue: a value fails a constraint (*ValueError)
//   - ErrUnknownField: unknown key, only when the loader is strict
//   - ErrInvalidFormat: file cannot be parsed
//   - ErrUnsupportedExt: unsupported file extension
package manifest
