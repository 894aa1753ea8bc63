package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// InstallRequest is the immutable configuration for one provisioning run.
// It is built once by the caller and passed through the installer untouched.
type InstallRequest struct {
	// NodeVersion is the required runtime version, exactly as the
	// distribution server names it (e.g. "v0.10.26").
	NodeVersion string

	// NPMVersion is the required package-manager version (e.g. "1.4.3").
	NPMVersion string

	// TargetDir is the directory the toolchain is provisioned under.
	TargetDir string

	// OS is the detected operating-system family.
	OS OS

	// Arch is the detected CPU word width.
	Arch Arch

	// Mirror is the distribution root downloads are resolved against.
	Mirror Mirror
}

// NewInstallRequest validates the required fields and returns the request.
// An empty mirror falls back to the canonical distribution root.
func NewInstallRequest(nodeVersion, npmVersion, targetDir string, os OS, arch Arch, mirror Mirror) (InstallRequest, error) {
	switch {
	case nodeVersion == "":
		return InstallRequest{}, zerr.With(ErrInvalidRequest, "missing_field", "node version")
	case npmVersion == "":
		return InstallRequest{}, zerr.With(ErrInvalidRequest, "missing_field", "npm version")
	case targetDir == "":
		return InstallRequest{}, zerr.With(ErrInvalidRequest, "missing_field", "target directory")
	}
	if mirror == "" {
		mirror = DefaultMirror
	}
	return InstallRequest{
		NodeVersion: nodeVersion,
		NPMVersion:  npmVersion,
		TargetDir:   filepath.Clean(targetDir),
		OS:          os,
		Arch:        arch,
		Mirror:      mirror,
	}, nil
}

// InstallDir is the directory the toolchain ends up in: <target>/node.
func (r InstallRequest) InstallDir() string {
	return filepath.Join(r.TargetDir, "node")
}

// NodeBinaryName is the file name of the runtime binary for the request's OS.
func (r InstallRequest) NodeBinaryName() string {
	if r.OS == Windows {
		return "node.exe"
	}
	return "node"
}

// NodeBinaryPath is the fixed location of the installed runtime binary.
func (r InstallRequest) NodeBinaryPath() string {
	return filepath.Join(r.InstallDir(), r.NodeBinaryName())
}

// NPMManifestPath is the fixed location of the installed npm package.json.
func (r InstallRequest) NPMManifestPath() string {
	return filepath.Join(r.InstallDir(), "npm", "package.json")
}

// ScratchDir is the temporary extraction workspace for the non-Windows
// runtime install. It lives under the target directory so the final rename
// never crosses a filesystem boundary.
func (r InstallRequest) ScratchDir() string {
	return filepath.Join(r.TargetDir, "node_tmp")
}
