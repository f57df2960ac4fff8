package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "vfsh/internal/errors"
	"vfsh/internal/vfs"
)

func TestCheckName(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		name string
		kind vfs.Kind
		want apperrors.Kind
	}{
		{"notes.txt", vfs.File, ""},
		{"README", vfs.File, ""},
		{".hidden", vfs.File, ""},
		{".bashrc", vfs.File, ""},
		{"archive.tar.md", vfs.File, ""},
		{"docs", vfs.Directory, ""},
		{"a.exe", vfs.File, apperrors.KindUnrecognizedExtension},
		{"trailing.", vfs.File, apperrors.KindUnrecognizedExtension},
		{".txt", vfs.File, apperrors.KindUnrecognizedExtension},
		{"a:b.txt", vfs.File, apperrors.KindInvalidNameSymbol},
		{"a%b", vfs.File, apperrors.KindInvalidNameSymbol},
		{"semi;", vfs.File, apperrors.KindInvalidNameSymbol},
		{"[x]", vfs.Directory, apperrors.KindInvalidNameSymbol},
		{"a,b", vfs.Directory, apperrors.KindInvalidNameSymbol},
		{"tilde~", vfs.File, apperrors.KindInvalidNameSymbol},
		{"hash#", vfs.File, apperrors.KindInvalidNameSymbol},
		{"<tag>", vfs.File, apperrors.KindInvalidNameSymbol},
		{"全角：", vfs.File, apperrors.KindInvalidNameSymbol},
		{"「q」", vfs.Directory, apperrors.KindInvalidNameSymbol},
		{"yen￥", vfs.Directory, apperrors.KindInvalidNameSymbol},
		{"pipe｜", vfs.File, apperrors.KindInvalidNameSymbol},
		{"dir.d", vfs.Directory, apperrors.KindInvalidNameSymbol},
		{".config", vfs.Directory, apperrors.KindInvalidNameSymbol},
		{"", vfs.File, apperrors.KindInvalidNameSymbol},
		{".", vfs.File, apperrors.KindInvalidNameSymbol},
		{"..", vfs.Directory, apperrors.KindInvalidNameSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.name, func(t *testing.T) {
			err := s.checkName("test", tt.name, tt.kind)
			assert.Equal(t, tt.want, apperrors.KindOf(err), "%v", err)
		})
	}
}

func TestReservedSymbolReported(t *testing.T) {
	s := newTestSession(t)
	err := s.checkName("touch", "a：b", vfs.File)
	assert.EqualError(t, err, `touch: name "a：b" contains reserved symbol "："`)
}

func TestTouchAndMkdirNameRules(t *testing.T) {
	s := newTestSession(t)

	reject(t, s, "touch bad:name.txt", apperrors.KindInvalidNameSymbol)
	reject(t, s, "touch photo.xyz", apperrors.KindUnrecognizedExtension)
	reject(t, s, "mkdir v1.2", apperrors.KindInvalidNameSymbol)
	reject(t, s, "touch dir/", apperrors.KindInvalidNameSymbol)

	run(t, s, "touch .env", "touch Makefile", "mkdir src")
	assert.Equal(t, "Makefile src/", run(t, s, "ls"))
}

func TestExtensionSet(t *testing.T) {
	set := extensionSet(nil)
	for _, ext := range DefaultExtensions {
		assert.True(t, set[ext], ext)
	}
	set = extensionSet([]string{".md", "rst"})
	assert.True(t, set["md"])
	assert.True(t, set["rst"])
	assert.False(t, set["txt"])
}
