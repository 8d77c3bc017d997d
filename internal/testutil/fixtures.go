package testutil

// SynManifest is the reference synthesis manifest for a Spartan-6 board
const SynManifest = `target = "xilinx"
action = "synthesis"

modules = {"local" : "../"}

syn_device = "xc6slx45t"
syn_grade = "-3"
syn_package = "fgg484"
syn_top = "yarr"
syn_project = "yarr_spec.xise"

files = ["../yarr_spec.ucf",
         "../top_yarr_spec.vhd"]

fetchto = "../ip_cores"
`

// SynManifestYAML carries the same values as SynManifest
const SynManifestYAML = `target: xilinx
action: synthesis
modules:
  local: "../"
syn_device: xc6slx45t
syn_grade: "-3"
syn_package: fgg484
syn_top: yarr
syn_project: yarr_spec.xise
files:
  - ../yarr_spec.ucf
  - ../top_yarr_spec.vhd
fetchto: ../ip_cores
`

// SynManifestJSON carries the same values as SynManifest
const SynManifestJSON = `{
  "target": "xilinx",
  "action": "synthesis",
  "modules": {"local": "../"},
  "syn_device": "xc6slx45t",
  "syn_grade": "-3",
  "syn_package": "fgg484",
  "syn_top": "yarr",
  "syn_project": "yarr_spec.xise",
  "files": ["../yarr_spec.ucf", "../top_yarr_spec.vhd"],
  "fetchto": "../ip_cores"
}`

// SynManifestTOML carries the same values as SynManifest
const SynManifestTOML = `target = "xilinx"
action = "synthesis"
syn_device = "xc6slx45t"
syn_grade = "-3"
syn_package = "fgg484"
syn_top = "yarr"
syn_project = "yarr_spec.xise"
files = ["../yarr_spec.ucf", "../top_yarr_spec.vhd"]
fetchto = "../ip_cores"

[modules]
local = "../"
`

// SynSources are the files SynManifest references, relative to the tree root
var SynSources = []string{"yarr_spec.ucf", "top_yarr_spec.vhd"}
