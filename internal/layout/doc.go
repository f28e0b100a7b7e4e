// Package layout materializes a project's folder tree on disk.
//
// A FolderTemplate is decoded once from configuration into the Node variant
// (Leaf, Group, Sequence) and expanded by an Expander. Scene/shot sub-trees
// are grown afterwards by a Grower under every shot home found by
// FindShotHomes. Reserved-marked leaves ("__name", "__Shot_n") receive the
// hidden "___backup" and "___script" children from HiddenFolders.
//
// Every operation is idempotent: existing directories are never altered or
// removed, so a run interrupted half-way can simply be repeated.
package layout
