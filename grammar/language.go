package grammar

// #include <stdint.h>
// const void *tree_sitter_html(void);
// uint32_t ts_language_version(const void *);
import "C"
import (
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"
	// Links the compiled grammar the BevyML artifact is built from.
	_ "github.com/smacker/go-tree-sitter/html"
)

func GetLanguage() *sitter.Language {
	ptr := unsafe.Pointer(C.tree_sitter_html())
	return sitter.NewLanguage(ptr)
}

// LanguageVersion returns the ABI version recorded in the compiled grammar.
func LanguageVersion() uint32 {
	return uint32(C.ts_language_version(C.tree_sitter_html()))
}
