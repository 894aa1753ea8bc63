package domain

import "strings"

// DefaultMirror is the canonical distribution root.
const DefaultMirror = Mirror("https://nodejs.org/dist/")

// Mirror is the root URL of the distribution server. It is injected into the
// installer rather than read from a package global so tests can point it at
// a local fixture server.
//
// The URL shapes produced here are compatibility surface with the existing
// distribution server and must be reproduced verbatim.
type Mirror string

func (m Mirror) root() string {
	s := string(m)
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s
}

// NPMArchiveURL is the tarball location for a package-manager version:
// <root>/npm/npm-<version>.tgz.
func (m Mirror) NPMArchiveURL(version string) string {
	return m.root() + "npm/npm-" + version + ".tgz"
}

// NodeDistName is the platform-qualified long name of a runtime
// distribution: node-<version>-<os>-<arch>.
func (m Mirror) NodeDistName(version string, os OS, arch Arch) string {
	return "node-" + version + "-" + os.DistName() + "-" + arch.String()
}

// NodeArchiveURL is the archive location for a non-Windows runtime version:
// <root>/<version>/node-<version>-<os>-<arch>.tar.gz.
func (m Mirror) NodeArchiveURL(version string, os OS, arch Arch) string {
	return m.root() + version + "/" + m.NodeDistName(version, os, arch) + ".tar.gz"
}

// WindowsBinaryURL is the bare-executable location for a Windows runtime
// version. Only the 64-bit build lives under a dedicated /x64/ segment.
func (m Mirror) WindowsBinaryURL(version string, arch Arch) string {
	if arch == X64 {
		return m.root() + version + "/x64/node.exe"
	}
	return m.root() + version + "/node.exe"
}
