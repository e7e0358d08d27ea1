// Package nav builds website navigation from a directory tree.
//
// Every directory below a root carries a [MenuFileName] file holding a JSON
// array of entries. The entry without a link describes the directory
// itself; the others describe its pages. A [Builder] walks the tree,
// attaches each directory's pages and subdirectories below the directory's
// own item, and keeps all siblings ordered by [Compare].
//
// The resulting [Tree] serializes to a nested JSON structure with
// [WriteStructure] and renders group fragments from the [TemplatePrefix]
// files it found with [Tree.WriteGroups].
package nav
