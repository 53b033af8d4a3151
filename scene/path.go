package scene

import "strings"

// Path identifies a node by its position in the hierarchy, e.g. "/Root/Mesh".
// Paths are the only identity that survives across independently loaded
// documents; live node references never cross document boundaries.
type Path string

// RootPath is the path of the implicit document root.
const RootPath = Path("/")

func (p Path) IsRoot() bool {
	return p == RootPath || p == ""
}

// Name returns the last segment of the path, or "" for the root.
func (p Path) Name() string {
	if p.IsRoot() {
		return ""
	}
	idx := strings.LastIndex(string(p), "/")
	return string(p)[idx+1:]
}

// Parent returns the path one level up; the root is its own parent.
func (p Path) Parent() Path {
	if p.IsRoot() {
		return RootPath
	}
	idx := strings.LastIndex(string(p), "/")
	if idx <= 0 {
		return RootPath
	}
	return Path(string(p)[:idx])
}

// Append returns the path extended by one child name.
func (p Path) Append(name string) Path {
	if p.IsRoot() {
		return Path("/" + name)
	}
	return Path(string(p) + "/" + name)
}

// Segments splits the path into its name segments, root first excluded.
func (p Path) Segments() []string {
	if p.IsRoot() {
		return nil
	}
	return strings.Split(strings.TrimPrefix(string(p), "/"), "/")
}
