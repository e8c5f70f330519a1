// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package target converts command line calendar targets into the URI form
// consumed by fs.FileSystem implementations.
package target

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Normalize returns the URI used to open a calendar target.
//
// Plain paths and file:// URIs become cleaned, slash separated, absolute
// paths rooted at "/". Any other scheme, such as webcal:// or https://, is
// returned unchanged for a remote FileSystem to resolve.
func Normalize(target string) string {
	if IsWindowsVolume(target) {
		return strings.ReplaceAll(target, `\`, "/")
	}
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	p := target
	if u.Scheme == "file" {
		p = u.Path
	}
	return path.Join("/", filepath.ToSlash(p))
}

// IsLocal reports whether a normalized target refers to the local disk.
func IsLocal(uri string) bool {
	u, err := url.Parse(uri)
	return IsWindowsVolume(uri) || (err == nil && (u.Scheme == "" || u.Scheme == "file"))
}

// IsWindowsVolume reports whether the target begins with a drive letter.
// url.Parse reads "C:/cal.ics" as scheme "c".
func IsWindowsVolume(target string) bool {
	if len(target) < 2 || target[1] != ':' {
		return false
	}
	c := target[0] | 0x20
	return c >= 'a' && c <= 'z' && (len(target) == 2 || target[2] == '/' || target[2] == '\\')
}
