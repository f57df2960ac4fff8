package shell

import (
	"fmt"
	"strings"

	apperrors "vfsh/internal/errors"
	"vfsh/internal/vfs"
)

// reservedSymbols may not appear in file or directory names.
const reservedSymbols = "%:;[],％：；［］，~/「」｜￥#<>"

// DefaultExtensions are the file extensions touch accepts.
var DefaultExtensions = []string{
	"txt", "md", "js", "ts", "html", "css", "json", "xml", "yaml", "yml",
	"csv", "go", "py", "java", "c", "cpp", "h", "sh", "log",
}

// checkName applies the naming rules for a new entry of the given kind.
//
// Files: a name split at its last dot needs a recognized extension when the
// part before the dot is non-empty; a dotfile (".name") is hidden and must
// not look like a bare extension. Directories may not contain dots at all.
func (s *Session) checkName(cmd, name string, kind vfs.Kind) error {
	if name == "" || name == "." || name == ".." {
		return apperrors.Newf(apperrors.KindInvalidNameSymbol, cmd, "invalid name %q", name)
	}
	if i := strings.IndexAny(name, reservedSymbols); i >= 0 {
		r := []rune(name[i:])[0]
		return apperrors.Newf(apperrors.KindInvalidNameSymbol, cmd,
			"name %q contains reserved symbol %q", name, string(r))
	}

	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return nil
	}
	if kind == vfs.Directory {
		return apperrors.Newf(apperrors.KindInvalidNameSymbol, cmd,
			"directory name %q must not contain %q", name, ".")
	}

	prefix, suffix := name[:dot], name[dot+1:]
	known := s.extensions[suffix]
	switch {
	case prefix == "" && known:
		return apperrors.Newf(apperrors.KindUnrecognizedExtension, cmd,
			"%q is an extension without a file name", name)
	case prefix != "" && !known:
		return apperrors.Newf(apperrors.KindUnrecognizedExtension, cmd,
			"unrecognized extension %q in %q", "."+suffix, name)
	}
	return nil
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.TrimPrefix(e, ".")] = true
	}
	return set
}

func describe(kind vfs.Kind, name string) string {
	return fmt.Sprintf("%s %q", kind, name)
}
