package domain

import "strings"

// RootPath is the path of a workspace root
const RootPath = "/"

// JoinPath appends segment to base
func JoinPath(base, segment string) string {
	segment = strings.Trim(segment, "/")
	if base == "" || base == RootPath {
		return RootPath + segment
	}
	if segment == "" {
		return base
	}
	return base + "/" + segment
}

// ParentPath returns the path of the parent, "/" for top level paths
func ParentPath(path string) string {
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return RootPath
	}
	return path[:i]
}

// BaseName returns the last segment of path
func BaseName(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

// IsDescendant reports whether path lies strictly below ancestor
func IsDescendant(path, ancestor string) bool {
	if ancestor == RootPath {
		return path != RootPath
	}
	return strings.HasPrefix(path, ancestor+"/")
}

// Rebase replaces the oldPrefix of path with newPrefix
func Rebase(path, oldPrefix, newPrefix string) string {
	if path == oldPrefix {
		return newPrefix
	}
	return newPrefix + strings.TrimPrefix(path, oldPrefix)
}
